package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/domain/profile"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

// The profile is stored as a single row per owner; skills, social and
// the two history lists live in JSONB columns so the whole document is
// written back atomically in one statement.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = `
	p.owner_id, u.name, u.avatar, p.company, p.website, p.location,
	p.status, p.bio, p.github_username, p.skills, p.social,
	p.experience, p.education, p.created_at, p.updated_at
`

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.OwnerID, &p.OwnerName, &p.OwnerAvatar, &p.Company, &p.Website,
		&p.Location, &p.Status, &p.Bio, &p.GithubUsername, &skillsBytes,
		&socialBytes, &experienceBytes, &educationBytes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		l.Warn("Failed to unmarshal skills", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		l.Warn("Failed to unmarshal social", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Social = map[string]string{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		l.Warn("Failed to unmarshal experience", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		l.Warn("Failed to unmarshal education", zap.String("owner_id", p.OwnerID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}
	return p, nil
}

func (r *postgresProfileRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.owner_id
		WHERE p.owner_id = $1
	`
	return scanProfile(r.db.QueryRow(ctx, query, ownerID), r.logger)
}

func (r *postgresProfileRepo) FindAll(ctx context.Context, limit, offset int) ([]*profile.Profile, error) {
	builder := psqlProfile.Select(
		"p.owner_id", "u.name", "u.avatar", "p.company", "p.website",
		"p.location", "p.status", "p.bio", "p.github_username", "p.skills",
		"p.social", "p.experience", "p.education", "p.created_at", "p.updated_at",
	).
		From("profiles p").
		Join("users u ON u.id = p.owner_id").
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, r.logger)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		INSERT INTO profiles (
			owner_id, company, website, location, status, bio,
			github_username, skills, social, experience, education,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (owner_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.OwnerID, p.Company, p.Website, p.Location, p.Status, p.Bio,
		p.GithubUsername, skillsBytes, socialBytes, experienceBytes,
		educationBytes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

// DeleteByOwnerID removes the owner's profile. Deleting an absent
// profile is not an error; account deletion must stay idempotent.
func (r *postgresProfileRepo) DeleteByOwnerID(ctx context.Context, ownerID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE owner_id = $1`
	if _, err := r.db.Exec(ctx, query, ownerID); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}
