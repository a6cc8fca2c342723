package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/authz"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	manager, err := NewManager("test-secret", ttl, "test_session", false)
	require.NoError(t, err)
	return manager
}

func TestManagerRequiresSecret(t *testing.T) {
	_, err := NewManager("", time.Hour, "s", false)
	require.Error(t, err)
}

func TestIssueValidateRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	for _, subject := range []authz.Subject{
		{UserID: "u-1", Role: authz.RoleSuperAdmin},
		{UserID: "u-2", Role: authz.RoleHR, OutletID: "o-1"},
		{UserID: "u-3", Role: authz.RoleEmployee, OutletID: "o-2"},
	} {
		token, err := manager.Issue(subject)
		require.NoError(t, err)

		sess, err := manager.Validate(token)
		require.NoError(t, err)
		require.Equal(t, subject.UserID, sess.UserID)
		require.Equal(t, subject.Role, sess.Role)
		require.Equal(t, subject.OutletID, sess.OutletID)
		require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, 5*time.Second)
	}
}

func TestValidateFailsClosed(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Issue(authz.Subject{UserID: "u-1", Role: authz.RoleAdmin})
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not-a-token",
		"truncated": token[:len(token)-10],
		"tampered":  token[:len(token)-2] + "xx",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := manager.Validate(raw)
			require.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	other, err := NewManager("another-secret", time.Hour, "test_session", false)
	require.NoError(t, err)

	token, err := other.Issue(authz.Subject{UserID: "u-1", Role: authz.RoleAdmin})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	manager.ttl = -time.Minute

	token, err := manager.Issue(authz.Subject{UserID: "u-1", Role: authz.RoleAdmin})
	require.NoError(t, err)

	manager.ttl = time.Hour
	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Issue(authz.Subject{UserID: "u-1", Role: authz.Role("INTERN")})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestCookieRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Issue(authz.Subject{UserID: "u-9", Role: authz.RoleHR, OutletID: "o-3"})
	require.NoError(t, err)

	res := httptest.NewRecorder()
	manager.Write(res, token)
	cookie := res.Result().Cookies()[0]
	require.Equal(t, "test_session", cookie.Name)
	require.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	sess, err := manager.FromRequest(req)
	require.NoError(t, err)
	require.Equal(t, "u-9", sess.UserID)

	// Clearing writes an expired cookie.
	cleared := httptest.NewRecorder()
	manager.Clear(cleared)
	require.True(t, strings.Contains(cleared.Header().Get("Set-Cookie"), "Max-Age=0"))
}

func TestFromRequestWithoutCookie(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	_, err := manager.FromRequest(req)
	require.ErrorIs(t, err, ErrInvalidSession)
}
