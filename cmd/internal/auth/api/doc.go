// Package authapi is habitd's HTTP authentication boundary.
//
// It exposes registration, login, and the authenticated /me endpoint, and
// owns the Authorization Gate (Authenticator) that every protected route
// in the server passes through.
package authapi
