// File: internal/identity/session.go
package identity

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type observer struct {
	id int
	cb func(*Identity)
}

// Session exposes the observable current identity for an embedded client of
// the application (the watch tool, tests). Observers are invoked once
// immediately on registration and again on every sign-in/sign-out, in
// registration order, never concurrently for the same observer: dispatch
// happens on the mutating goroutine while the session lock is held, so
// callbacks must not call back into the Session.
type Session struct {
	provider Provider
	logger   *zap.Logger

	mu        sync.Mutex
	current   *Identity
	observers []observer
	nextObsID int
}

// NewSession creates a session with no authenticated identity.
func NewSession(provider Provider, logger *zap.Logger) *Session {
	return &Session{provider: provider, logger: logger.Named("Session")}
}

// Current returns a synchronous snapshot of the authenticated identity, or
// nil when unauthenticated. No network.
func (s *Session) Current() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Observe registers cb, fires it once immediately with the current identity
// (or nil), and returns an unsubscribe handle.
func (s *Session) Observe(cb func(*Identity)) func() {
	s.mu.Lock()
	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observer{id: id, cb: cb})
	cb(s.current)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Session) setCurrentLocked(ident *Identity) {
	s.current = ident
	for _, o := range s.observers {
		o.cb(ident)
	}
}

// SignUp creates an account and signs the session in as it, mirroring the
// provider's client-side behavior where account creation starts a session.
func (s *Session) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	ident, err := s.provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.setCurrentLocked(ident)
	s.mu.Unlock()
	return ident, nil
}

// SignInPassword authenticates with email/password and updates the session.
func (s *Session) SignInPassword(ctx context.Context, email, password string) (*Identity, *TokenResponse, error) {
	ident, tokens, err := s.provider.SignInPassword(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	s.setCurrentLocked(ident)
	s.mu.Unlock()
	return ident, tokens, nil
}

// SignOut clears the session. Observers fire with nil. The provider-side
// revocation failure, if any, is propagated but the local session is cleared
// regardless so a stale identity is never retained.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.setCurrentLocked(nil)
	s.mu.Unlock()

	if current == nil {
		return nil
	}
	if err := s.provider.SignOut(ctx, current.UID); err != nil {
		s.logger.Warn("Provider sign-out failed", zap.String("uid", current.UID), zap.Error(err))
		return err
	}
	return nil
}
