// Package api handles incoming HTTP requests, request decoding and
// validation, and response formatting. It translates HTTP concerns into
// calls on the task, statistics and user services, and maps their errors to
// status codes and client-safe messages in one place (errors.go).
package api
