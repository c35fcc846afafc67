// internal/service/auth/auth_service.go
package auth

import (
	"context"

	"parkreg-service/internal/domain/applicant"
	xerrors "parkreg-service/internal/pkg/errors"
	"parkreg-service/internal/pkg/jwt"
	"parkreg-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service resolves identities: applicant logins become Redis sessions, admin
// logins become signed bearer tokens. Applicant accounts themselves are
// provisioned by the onboarding flow, not here.
type Service struct {
	applicants applicant.Repository
	sessions   *session.Manager
	tokens     *jwt.Manager
	logger     *zap.Logger
}

func NewService(applicants applicant.Repository, sessions *session.Manager, tokens *jwt.Manager, logger *zap.Logger) *Service {
	return &Service{
		applicants: applicants,
		sessions:   sessions,
		tokens:     tokens,
		logger:     logger,
	}
}

// Login starts a session for a known applicant.
func (s *Service) Login(ctx context.Context, email string) (*session.SessionData, *applicant.Applicant, error) {
	a, err := s.applicants.FindByEmail(ctx, email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, nil, xerrors.ErrUnauthorized
		}
		return nil, nil, xerrors.Wrap(err, "failed to look up applicant")
	}

	sess, err := s.sessions.Create(ctx, a.ID, string(a.RegistrantType))
	if err != nil {
		return nil, nil, xerrors.Wrap(err, "failed to create session")
	}

	s.logger.Info("applicant logged in", zap.Int64("applicant_id", a.ID))
	return sess, a, nil
}

// Logout destroys an applicant session.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ResolveSession maps a session token back to its session data.
func (s *Service) ResolveSession(ctx context.Context, token string) (*session.SessionData, error) {
	return s.sessions.Get(ctx, token)
}

// CurrentApplicant loads the applicant behind an authenticated session. A
// session whose applicant row has since been removed reads as expired.
func (s *Service) CurrentApplicant(ctx context.Context, applicantID int64) (*applicant.Applicant, error) {
	a, err := s.applicants.FindByID(ctx, applicantID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrSessionExpired
		}
		return nil, xerrors.Wrap(err, "failed to load applicant")
	}
	return a, nil
}

// AdminLogin verifies admin credentials and issues a bearer token.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (string, error) {
	adm, err := s.applicants.FindAdminByEmail(ctx, email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return "", xerrors.ErrUnauthorized
		}
		return "", xerrors.Wrap(err, "failed to look up admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adm.PasswordHash), []byte(password)); err != nil {
		return "", xerrors.ErrUnauthorized
	}

	token, err := s.tokens.Generate(adm.ID)
	if err != nil {
		return "", xerrors.Wrap(err, "failed to issue admin token")
	}

	s.logger.Info("admin logged in", zap.Int64("admin_id", adm.ID))
	return token, nil
}

// VerifyAdminToken validates an admin bearer token.
func (s *Service) VerifyAdminToken(token string) (*jwt.Claims, error) {
	return s.tokens.Verify(token)
}
