package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/patentmarket/admin-gateway/internal/core/auth"
)

// ContextKey is the type for context keys
type ContextKey string

// SessionKey is the context key for the resolved login session
const SessionKey ContextKey = "session"

const (
	tokenIssuer  = "patentmarket-admin"
	resetPurpose = "password_reset"
	resetTTL     = 10 * time.Minute
)

// SessionClaims are the claims of a login token. The token only names the
// server-side session; deleting the session revokes the token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// ResetClaims are the claims of a short-lived password-reset token issued
// after successful identity verification.
type ResetClaims struct {
	MemberID int64  `json:"member_id"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenService signs and validates the gateway's JWT tokens
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new token service
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// GenerateSessionToken issues a login token expiring with the session
func (s *TokenService) GenerateSessionToken(session auth.Session) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: session.ID,
		Role:      session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSessionToken validates a login token and returns its claims
func (s *TokenService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("token carries no session")
	}
	return claims, nil
}

// GenerateResetToken issues a short-lived token tying the password-reset
// step to the member whose identity was just verified.
func (s *TokenService) GenerateResetToken(memberID int64) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		MemberID: memberID,
		Purpose:  resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}
	return signed, nil
}

// ValidateResetToken validates a reset token and returns the member ID it
// was issued for. A session token is rejected here; the purposes never mix.
func (s *TokenService) ValidateResetToken(tokenString string) (int64, error) {
	claims := &ResetClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return 0, err
	}
	if claims.Purpose != resetPurpose {
		return 0, fmt.Errorf("token purpose mismatch")
	}
	return claims.MemberID, nil
}

func (s *TokenService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token claims")
	}
	return nil
}

// SessionResolver loads the server-side session behind a token
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (auth.Session, error)
}

// SessionGuard validates the bearer token and resolves its session. A valid
// token whose session was revoked or expired is rejected, so logout takes
// effect immediately.
func SessionGuard(tokens *TokenService, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateSessionToken(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			session, err := sessions.Resolve(r.Context(), claims.SessionID)
			if err != nil {
				http.Error(w, "session expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects sessions without the admin role. Must run after
// SessionGuard.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok || !session.IsAdmin() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext extracts the resolved session from the request context
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(SessionKey).(auth.Session)
	return session, ok
}
