package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/patentmarket/admin-gateway/internal/infra/gateway/marketapi"
	apperrors "github.com/patentmarket/admin-gateway/internal/shared/errors"
	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// User-facing messages for backend failures that carry no message of their
// own. Message-bearing failures are surfaced verbatim instead.
const (
	msgNetwork            = "네트워크 연결을 확인해주세요."
	msgCredentialMismatch = "이메일 또는 비밀번호가 일치하지 않습니다."
	msgDeactivated        = "탈퇴 처리된 계정입니다."
	msgSuspended          = "정지된 계정입니다. 관리자에게 문의해주세요."
	msgServerError        = "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	msgVerifyMismatch     = "일치하는 회원 정보를 찾을 수 없습니다."
)

// SessionStore persists login sessions
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// Backend is the slice of the marketplace API the auth service consumes
type Backend interface {
	Login(ctx context.Context, email, password string) (marketapi.Member, error)
	CreateAccount(ctx context.Context, req marketapi.CreateAccountRequest) error
	VerifyMember(ctx context.Context, name, email string) (int64, error)
	UpdatePassword(ctx context.Context, memberID int64, newPassword string) error
}

// Service implements login, registration and the password-reset wizard on
// top of the marketplace backend. The gateway holds no credential store;
// the backend authenticates and this service only manages sessions.
type Service struct {
	backend    Backend
	sessions   SessionStore
	sessionTTL time.Duration
	logger     *logger.Logger
}

// NewService creates a new auth service
func NewService(backend Backend, sessions SessionStore, sessionTTL time.Duration, log *logger.Logger) *Service {
	return &Service{
		backend:    backend,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     log.WithField("component", "auth_service"),
	}
}

// Login authenticates against the backend and creates a server-side session
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	member, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return Session{}, s.mapLoginError(err)
	}

	now := time.Now()
	session := Session{
		ID:        uuid.NewString(),
		MemberID:  member.ID,
		Email:     member.Email,
		Name:      member.Name,
		Role:      member.Role,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("failed to save session", "member_id", member.ID, "error", err)
		return Session{}, apperrors.Internal("failed to create session", err)
	}

	s.logger.Info("member logged in", "member_id", member.ID, "session_id", session.ID)
	return session, nil
}

// Logout destroys the session. A missing session is not an error; logout is
// idempotent.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("failed to delete session", "session_id", sessionID, "error", err)
		return apperrors.Internal("failed to delete session", err)
	}
	s.logger.Info("member logged out", "session_id", sessionID)
	return nil
}

// Resolve loads the session behind a token's session ID. Expired sessions
// are treated as not found even if Redis has not evicted them yet.
func (s *Service) Resolve(ctx context.Context, sessionID string) (Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

// Register creates a new member account on the backend
func (s *Service) Register(ctx context.Context, email, password, name string) error {
	req := marketapi.CreateAccountRequest{
		Email:    email,
		Password: password,
		Name:     name,
	}
	if err := s.backend.CreateAccount(ctx, req); err != nil {
		return s.mapBackendError(err, apperrors.ErrCodeValidation, msgServerError)
	}

	s.logger.Info("member registered", "email", email)
	return nil
}

// VerifyIdentity is the first step of the password-reset wizard: it checks
// the name/email pair against the backend and returns the matched member ID.
func (s *Service) VerifyIdentity(ctx context.Context, name, email string) (int64, error) {
	memberID, err := s.backend.VerifyMember(ctx, name, email)
	if err != nil {
		return 0, s.mapVerifyError(err)
	}
	return memberID, nil
}

// ResetPassword is the final step of the wizard. The member ID comes from a
// reset token issued after VerifyIdentity, never from the request body.
func (s *Service) ResetPassword(ctx context.Context, memberID int64, newPassword string) error {
	if err := s.backend.UpdatePassword(ctx, memberID, newPassword); err != nil {
		return s.mapBackendError(err, apperrors.ErrCodeBadRequest, msgServerError)
	}

	s.logger.Info("password reset", "member_id", memberID)
	return nil
}

// mapLoginError converts a backend login failure into the user-facing
// message the login form shows.
func (s *Service) mapLoginError(err error) error {
	apiErr, ok := marketapi.AsAPIError(err)
	if !ok {
		return apperrors.Internal(msgServerError, err)
	}

	switch apiErr.Kind {
	case marketapi.KindNoResponse:
		return apperrors.Upstream(msgNetwork, err)
	case marketapi.KindMessage:
		if apiErr.StatusCode == http.StatusForbidden {
			return s.mapAccountState(apiErr, err)
		}
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, apiErr.Message)
	}

	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, msgCredentialMismatch)
	case http.StatusForbidden:
		return s.mapAccountState(apiErr, err)
	default:
		return apperrors.Internal(msgServerError, err)
	}
}

// mapAccountState discriminates the 403 family by resultCode: a deactivated
// account and a suspended account share the status code but not the message.
func (s *Service) mapAccountState(apiErr *marketapi.APIError, err error) error {
	switch apiErr.ResultCode {
	case marketapi.ResultMemberDeactivated:
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, msgDeactivated)
	case marketapi.ResultMemberSuspended:
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, msgSuspended)
	}
	if apiErr.Kind == marketapi.KindMessage {
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, apiErr.Message)
	}
	return apperrors.Wrap(err, apperrors.ErrCodeForbidden, msgServerError)
}

// mapVerifyError converts an identity-verification failure. A 404 means the
// name/email pair matched no member.
func (s *Service) mapVerifyError(err error) error {
	apiErr, ok := marketapi.AsAPIError(err)
	if !ok {
		return apperrors.Internal(msgServerError, err)
	}

	switch apiErr.Kind {
	case marketapi.KindNoResponse:
		return apperrors.Upstream(msgNetwork, err)
	case marketapi.KindMessage:
		return apperrors.Wrap(err, apperrors.ErrCodeBadRequest, apiErr.Message)
	}

	switch apiErr.StatusCode {
	case http.StatusNotFound, http.StatusBadRequest:
		return apperrors.Wrap(err, apperrors.ErrCodeBadRequest, msgVerifyMismatch)
	default:
		return apperrors.Internal(msgServerError, err)
	}
}

// mapBackendError is the shared mapping for register and reset: verbatim
// backend message when present, per-kind fallbacks otherwise.
func (s *Service) mapBackendError(err error, code string, fallback string) error {
	apiErr, ok := marketapi.AsAPIError(err)
	if !ok {
		return apperrors.Internal(fallback, err)
	}

	switch apiErr.Kind {
	case marketapi.KindNoResponse:
		return apperrors.Upstream(msgNetwork, err)
	case marketapi.KindMessage:
		return apperrors.Wrap(err, code, apiErr.Message)
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		return apperrors.Internal(fallback, err)
	}
	return apperrors.Wrap(err, code, fallback)
}
