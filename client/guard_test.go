package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func authedStore(t *testing.T) *Store {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, authPayload("user@example.com", "access-1", "refresh-1"))
	}))
	t.Cleanup(server.Close)

	store := NewStore(New(server.URL), nil)
	require.NoError(t, store.Login(context.Background(), "user@example.com", "hunter2secret"))
	return store
}

func TestGuardAnonymousOnProtectedRoute(t *testing.T) {
	guard := NewGuard(NewStore(nil, nil))

	decision := guard.Check("/clothing/42", RouteMeta{RequiresAuth: true})

	require.False(t, decision.Allowed)
	require.Equal(t, "/login", decision.RedirectTo)
	require.Equal(t, "/clothing/42", decision.ReturnTo)
}

func TestGuardAnonymousOnPublicRoute(t *testing.T) {
	guard := NewGuard(NewStore(nil, nil))

	require.True(t, guard.Check("/about", RouteMeta{}).Allowed)
	require.True(t, guard.Check("/login", RouteMeta{GuestOnly: true}).Allowed)
}

func TestGuardAuthenticatedOnGuestRoute(t *testing.T) {
	guard := NewGuard(authedStore(t))

	decision := guard.Check("/login", RouteMeta{GuestOnly: true})

	require.False(t, decision.Allowed)
	require.Equal(t, "/", decision.RedirectTo)
	require.Empty(t, decision.ReturnTo)
}

func TestGuardAuthenticatedOnProtectedRoute(t *testing.T) {
	guard := NewGuard(authedStore(t))

	require.True(t, guard.Check("/clothing", RouteMeta{RequiresAuth: true}).Allowed)
	require.True(t, guard.Check("/", RouteMeta{}).Allowed)
}

func TestGuardReactsToLogout(t *testing.T) {
	store := authedStore(t)
	guard := NewGuard(store)

	require.True(t, guard.Check("/rooms", RouteMeta{RequiresAuth: true}).Allowed)

	require.NoError(t, store.Logout(context.Background()))

	decision := guard.Check("/rooms", RouteMeta{RequiresAuth: true})
	require.False(t, decision.Allowed)
	require.Equal(t, "/login", decision.RedirectTo)
	require.Equal(t, "/rooms", decision.ReturnTo)
}

func TestGuardWithoutStore(t *testing.T) {
	guard := NewGuard(nil)

	decision := guard.Check("/clothing", RouteMeta{RequiresAuth: true})
	require.False(t, decision.Allowed)
	require.Equal(t, "/login", decision.RedirectTo)
}
