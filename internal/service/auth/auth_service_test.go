package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"parkreg-service/internal/domain/applicant"
	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubApplicantRepo struct {
	applicants map[int64]*applicant.Applicant
	err        error
}

func (s *stubApplicantRepo) FindByID(ctx context.Context, id int64) (*applicant.Applicant, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.applicants[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return a, nil
}

func (s *stubApplicantRepo) FindByEmail(ctx context.Context, email string) (*applicant.Applicant, error) {
	for _, a := range s.applicants {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (s *stubApplicantRepo) FindAdminByEmail(ctx context.Context, email string) (*applicant.Admin, error) {
	return nil, xerrors.ErrNotFound
}

func TestCurrentApplicant(t *testing.T) {
	repo := &stubApplicantRepo{applicants: map[int64]*applicant.Applicant{
		42: {
			ID:             42,
			FullName:       "Jordan Li",
			Email:          "jordan.li@example.edu",
			RegistrantType: applicant.TypeStudent,
			CreatedAt:      time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
		},
	}}
	s := NewService(repo, nil, nil, zap.NewNop())

	a, err := s.CurrentApplicant(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Li", a.FullName)
	assert.Equal(t, applicant.TypeStudent, a.RegistrantType)
}

func TestCurrentApplicantGoneReadsAsExpired(t *testing.T) {
	s := NewService(&stubApplicantRepo{applicants: map[int64]*applicant.Applicant{}}, nil, nil, zap.NewNop())

	_, err := s.CurrentApplicant(context.Background(), 42)
	require.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestCurrentApplicantRepoFailure(t *testing.T) {
	s := NewService(&stubApplicantRepo{err: errors.New("connection reset")}, nil, nil, zap.NewNop())

	_, err := s.CurrentApplicant(context.Background(), 42)
	require.Error(t, err)
	assert.False(t, errors.Is(err, xerrors.ErrSessionExpired))
}
