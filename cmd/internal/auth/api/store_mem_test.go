package authapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"habitd/cmd/identity"
)

// memStore is an in-memory identity.Store for handler tests.
// It mirrors the Mongo store's contract: atomic insert, conflict on
// duplicate normalized email, not-found on missing lookup.
type memStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]identity.User // keyed by normalized email

	// failWith, when set, makes every call return this error.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]identity.User)}
}

func (s *memStore) CreateUser(_ context.Context, in identity.CreateUserInput) (identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return identity.User{}, s.failWith
	}

	email := identity.NormalizeEmail(in.Email)
	if _, exists := s.users[email]; exists {
		return identity.User{}, identity.ConflictError{Op: "mem.CreateUser", Field: "email"}
	}

	s.seq++
	u := identity.User{
		ID:           fmt.Sprintf("user-%d", s.seq),
		Username:     in.Username,
		Email:        email,
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[email] = u
	return u, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return identity.User{}, s.failWith
	}

	u, ok := s.users[identity.NormalizeEmail(email)]
	if !ok {
		return identity.User{}, identity.NotFoundError{Op: "mem.GetUserByEmail", Resource: "user"}
	}
	return u, nil
}

func (s *memStore) delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, identity.NormalizeEmail(email))
}
