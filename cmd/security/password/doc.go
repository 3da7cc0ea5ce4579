// Package password implements credential hashing for habitd.
//
// Passwords are hashed with Argon2id into a PHC-style encoded string that
// carries the algorithm parameters and salt, so verification never depends
// on externally stored state. The package includes:
// - Configurable Argon2id parameters (via environment variables)
// - A minimal length policy applied before hashing
// - Strict hash decoding with anti-DoS parameter bounds during Verify
//
// Security notes:
// - Stored hash strings are treated as untrusted input during Verify.
// - Comparison of recomputed keys is constant-time.
package password
