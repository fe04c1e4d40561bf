// Package memory implements the store interfaces in process memory. It backs
// the server when database.driver is "memory" and serves as a fast store in
// handler and service tests. Data does not survive a restart.
package memory
