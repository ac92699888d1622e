package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProvider is a mock type for identity.Provider
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	args := m.Called(ctx, email, password, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identity), args.Error(1)
}

func (m *MockProvider) SignInPassword(ctx context.Context, email, password string) (*Identity, *TokenResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*Identity), args.Get(1).(*TokenResponse), args.Error(2)
}

func (m *MockProvider) SignOut(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func testIdentity(uid string) *Identity {
	return &Identity{UID: uid}
}

func TestSession_ObserveFiresImmediately(t *testing.T) {
	session := NewSession(new(MockProvider), zap.NewNop())

	var seen []*Identity
	unsubscribe := session.Observe(func(ident *Identity) {
		seen = append(seen, ident)
	})
	defer unsubscribe()

	require.Len(t, seen, 1)
	assert.Nil(t, seen[0], "initial callback reports the unauthenticated state")
}

func TestSession_SignInNotifiesObserversInOrder(t *testing.T) {
	provider := new(MockProvider)
	provider.On("SignInPassword", mock.Anything, "a@b.c", "pw").
		Return(testIdentity("u1"), &TokenResponse{IDToken: "tok"}, nil)

	session := NewSession(provider, zap.NewNop())

	var order []string
	session.Observe(func(ident *Identity) {
		if ident != nil {
			order = append(order, "first")
		}
	})
	session.Observe(func(ident *Identity) {
		if ident != nil {
			order = append(order, "second")
		}
	})

	ident, tokens, err := session.SignInPassword(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", ident.UID)
	assert.Equal(t, "tok", tokens.IDToken)

	assert.Equal(t, []string{"first", "second"}, order, "observers fire in registration order")
	assert.Equal(t, "u1", session.Current().UID)
}

func TestSession_SignInFailureLeavesSessionUnchanged(t *testing.T) {
	provider := new(MockProvider)
	provider.On("SignInPassword", mock.Anything, "a@b.c", "bad").
		Return(nil, nil, errors.New("INVALID_PASSWORD"))

	session := NewSession(provider, zap.NewNop())

	_, _, err := session.SignInPassword(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	assert.EqualError(t, err, "INVALID_PASSWORD", "provider errors pass through unmodified")
	assert.Nil(t, session.Current())
}

func TestSession_SignOut(t *testing.T) {
	provider := new(MockProvider)
	provider.On("SignInPassword", mock.Anything, "a@b.c", "pw").
		Return(testIdentity("u1"), &TokenResponse{}, nil)
	provider.On("SignOut", mock.Anything, "u1").Return(nil)

	session := NewSession(provider, zap.NewNop())
	_, _, err := session.SignInPassword(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	var last *Identity
	sawSignOut := false
	session.Observe(func(ident *Identity) {
		last = ident
		if ident == nil {
			sawSignOut = true
		}
	})

	require.NoError(t, session.SignOut(context.Background()))
	assert.Nil(t, session.Current())
	assert.Nil(t, last)
	assert.True(t, sawSignOut)
	provider.AssertCalled(t, "SignOut", mock.Anything, "u1")

	t.Run("signing out while signed out is a no-op", func(t *testing.T) {
		require.NoError(t, session.SignOut(context.Background()))
	})
}

func TestSession_SignOutClearsLocallyEvenIfRevocationFails(t *testing.T) {
	provider := new(MockProvider)
	provider.On("SignInPassword", mock.Anything, "a@b.c", "pw").
		Return(testIdentity("u1"), &TokenResponse{}, nil)
	provider.On("SignOut", mock.Anything, "u1").Return(errors.New("revocation failed"))

	session := NewSession(provider, zap.NewNop())
	_, _, err := session.SignInPassword(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	err = session.SignOut(context.Background())
	require.Error(t, err)
	assert.Nil(t, session.Current(), "stale identity must not be retained")
}

func TestSession_UnsubscribeStopsNotifications(t *testing.T) {
	provider := new(MockProvider)
	provider.On("SignUp", mock.Anything, "a@b.c", "pw", "Dana").
		Return(testIdentity("u1"), nil)

	session := NewSession(provider, zap.NewNop())

	calls := 0
	unsubscribe := session.Observe(func(*Identity) { calls++ })
	unsubscribe()

	_, err := session.SignUp(context.Background(), "a@b.c", "pw", "Dana")
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "only the immediate registration callback fires")
}
