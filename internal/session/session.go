package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/appubr/backoffice/internal/authz"
)

// ErrInvalidSession covers every token failure: missing, malformed,
// unsigned, expired, or tampered. Callers cannot distinguish the cases.
var ErrInvalidSession = errors.New("session: invalid token")

// Session is the validated, decoded proof of a logged-in identity.
type Session struct {
	UserID    string
	Role      authz.Role
	OutletID  string
	ExpiresAt time.Time
}

// Subject converts the session into the guard's input shape.
func (s *Session) Subject() *authz.Subject {
	if s == nil {
		return nil
	}
	return &authz.Subject{UserID: s.UserID, Role: s.Role, OutletID: s.OutletID}
}

type claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	OutletID string `json:"outlet_id,omitempty"`
}

// Manager issues and validates stateless signed session tokens. Tokens are
// HS256 compact JWTs carried in an HttpOnly cookie; there is no server-side
// session store, validity is purely signature plus expiry. Issue and
// Validate are pure functions of their input and the process-wide secret,
// safe for concurrent use.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	issuer     string
	secure     bool
}

// NewManager builds a Manager. An empty secret is a configuration fault and
// must abort startup rather than run unauthenticated.
func NewManager(secret string, ttl time.Duration, cookieName string, secure bool) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret must be provided")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if cookieName == "" {
		cookieName = "ubr_session"
	}
	return &Manager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		issuer:     "ubr-backoffice",
		secure:     secure,
	}, nil
}

// Issue signs a token embedding identity id, role, outlet affiliation, and
// expiry.
func (m *Manager) Issue(subject authz.Subject) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role:     subject.Role.String(),
		OutletID: subject.OutletID,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and decodes the session. It fails
// closed: any parse error, wrong signing method, expired or tampered token
// yields ErrInvalidSession.
func (m *Manager) Validate(raw string) (*Session, error) {
	if raw == "" {
		return nil, ErrInvalidSession
	}
	token, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	decoded, ok := token.Claims.(*claims)
	if !ok {
		return nil, ErrInvalidSession
	}
	role, err := authz.ParseRole(decoded.Role)
	if err != nil {
		return nil, ErrInvalidSession
	}
	sess := &Session{
		UserID:   decoded.Subject,
		Role:     role,
		OutletID: decoded.OutletID,
	}
	if decoded.ExpiresAt != nil {
		sess.ExpiresAt = decoded.ExpiresAt.Time
	}
	return sess, nil
}

// TTL exposes the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// CookieName returns the cookie identifier carrying the token.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// FromRequest reads and validates the session cookie. A missing cookie is
// indistinguishable from an invalid one.
func (m *Manager) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return m.Validate(cookie.Value)
}

// Write sets the session cookie on the response.
func (m *Manager) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(m.ttl),
	})
}

// Clear expires the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
