// internal/repository/postgres/applicant_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"parkreg-service/internal/domain/applicant"
	xerrors "parkreg-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicantRepository struct {
	db *pgxpool.Pool
}

func NewApplicantRepository(db *pgxpool.Pool) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// FindByID retrieves an applicant by ID
func (r *ApplicantRepository) FindByID(ctx context.Context, id int64) (*applicant.Applicant, error) {
	query := `
		SELECT id, full_name, email, registrant_type, created_at
		FROM applicants
		WHERE id = $1
	`
	var a applicant.Applicant
	err := r.db.QueryRow(ctx, query, id).
		Scan(&a.ID, &a.FullName, &a.Email, &a.RegistrantType, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}
	return &a, nil
}

// FindByEmail retrieves an applicant by email
func (r *ApplicantRepository) FindByEmail(ctx context.Context, email string) (*applicant.Applicant, error) {
	query := `
		SELECT id, full_name, email, registrant_type, created_at
		FROM applicants
		WHERE LOWER(email) = LOWER($1)
	`
	var a applicant.Applicant
	err := r.db.QueryRow(ctx, query, email).
		Scan(&a.ID, &a.FullName, &a.Email, &a.RegistrantType, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}
	return &a, nil
}

// FindAdminByEmail retrieves an admin account by email
func (r *ApplicantRepository) FindAdminByEmail(ctx context.Context, email string) (*applicant.Admin, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE LOWER(email) = LOWER($1)
	`
	var adm applicant.Admin
	err := r.db.QueryRow(ctx, query, email).
		Scan(&adm.ID, &adm.Email, &adm.PasswordHash, &adm.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return &adm, nil
}
