// Package identity implements habitd's identity & credential foundation.
//
// It contains the user model, password hashing entry points, and the
// credential store boundary used by the HTTP layer.
//
// This package is intentionally dependency-light and security-first.
package identity
