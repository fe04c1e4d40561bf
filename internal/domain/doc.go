// Package domain contains the core business entities (users, tasks and the
// task statistics aggregate), their validation rules and the domain errors.
// It is independent of any storage or delivery mechanism.
package domain
