// Package service contains the application use cases: the task lifecycle,
// the per-owner statistics and account registration. Services depend on the
// interfaces in internal/store, never on a concrete database, and receive
// every dependency through their constructor.
//
// Authentication (token issuance and verification, credential checks) lives
// in the auth subpackage.
package service
