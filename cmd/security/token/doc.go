// Package token owns the process-wide session signing secret for habitd.
//
// The secret is loaded once at startup from the environment and used
// symmetrically to sign and verify every session token. It is never
// rotated within a running process.
//
// Policy:
//   - Startup MUST fail when the secret is missing; tokens are never minted
//     unsigned or with a weak key.
//   - A minimum byte length (>= 32 bytes for HMAC-SHA256) is enforced by
//     callers via SecretFromEnv.
package token
