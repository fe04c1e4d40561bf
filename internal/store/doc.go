// Package store defines the persistence interfaces for users and tasks.
// Implementations live under internal/platform; business rules depend only
// on these interfaces and the sentinel errors declared here.
package store
