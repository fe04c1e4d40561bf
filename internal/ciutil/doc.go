// Package ciutil detects CI environments and resolves environment variables
// that have more than one accepted name.
//
// Test helpers use it to decide whether a missing test database should skip
// a test (local development) or fail it (CI).
package ciutil
