package repository

import (
	"context"
	"errors"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/syncroapp/syncro-backend/internal/resource/domain"
	teamdomain "github.com/syncroapp/syncro-backend/internal/team/domain"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

var ErrResourceNotFound = errors.New("resource not found")

type Repository interface {
	Create(ctx context.Context, resource domain.Resource) error
	FindByID(ctx context.Context, id domain.ID) (domain.Resource, error)
	FindByTeam(ctx context.Context, teamID teamdomain.ID) ([]domain.WithCreator, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, resource domain.Resource) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO resources (id, team_id, title, type, url, note, file_name, file_path, tags, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(resource.ID),
		string(resource.TeamID),
		resource.Title,
		string(resource.Type),
		resource.URL,
		resource.Note,
		resource.FileName,
		resource.FilePath,
		resource.Tags,
		string(resource.CreatedBy),
		resource.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Resource, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, team_id, title, type, url, note, file_name, file_path, tags, created_by, created_at
		 FROM resources
		 WHERE id = $1`,
		string(id),
	)

	resource, err := scanResource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Resource{}, ErrResourceNotFound
		}
		return domain.Resource{}, fmt.Errorf("failed to find resource: %w", err)
	}
	return resource, nil
}

func (r *PgRepository) FindByTeam(ctx context.Context, teamID teamdomain.ID) ([]domain.WithCreator, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT r.id, r.team_id, r.title, r.type, r.url, r.note, r.file_name, r.file_path, r.tags, r.created_by, r.created_at,
		        u.name, u.email
		 FROM resources r
		 JOIN users u ON u.id = r.created_by
		 WHERE r.team_id = $1
		 ORDER BY r.created_at DESC`,
		string(teamID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find team resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.WithCreator
	for rows.Next() {
		var wc domain.WithCreator
		var teamID, resType, createdBy string
		if err := rows.Scan(
			&wc.ID,
			&teamID,
			&wc.Title,
			&resType,
			&wc.URL,
			&wc.Note,
			&wc.FileName,
			&wc.FilePath,
			&wc.Tags,
			&createdBy,
			&wc.CreatedAt,
			&wc.CreatorName,
			&wc.CreatorEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		wc.TeamID = teamdomain.ID(teamID)
		wc.Type = domain.Type(resType)
		wc.CreatedBy = userdomain.ID(createdBy)
		resources = append(resources, wc)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return resources, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func scanResource(row pgx.Row) (domain.Resource, error) {
	var resource domain.Resource
	var teamID, resType, createdBy string
	err := row.Scan(
		&resource.ID,
		&teamID,
		&resource.Title,
		&resType,
		&resource.URL,
		&resource.Note,
		&resource.FileName,
		&resource.FilePath,
		&resource.Tags,
		&createdBy,
		&resource.CreatedAt,
	)
	if err != nil {
		return domain.Resource{}, err
	}
	resource.TeamID = teamdomain.ID(teamID)
	resource.Type = domain.Type(resType)
	resource.CreatedBy = userdomain.ID(createdBy)
	return resource, nil
}
