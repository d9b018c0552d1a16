package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/syncroapp/syncro-backend/internal/project/domain"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrAlreadyMember   = errors.New("user already in project")
)

type Repository interface {
	Create(ctx context.Context, project domain.Project) error
	FindByID(ctx context.Context, id domain.ID) (domain.Project, error)
	FindByMember(ctx context.Context, userID string) ([]domain.Project, error)
	UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, progress int) (domain.Project, error)
	AddMember(ctx context.Context, projectID domain.ID, userID userdomain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const projectSelect = `
	SELECT p.id, p.name, p.description, p.course, p.deadline, p.goals,
	       p.status, p.progress, p.created_by, p.created_at,
	       COALESCE(array_agg(pm.user_id::text) FILTER (WHERE pm.user_id IS NOT NULL), '{}')
	FROM projects p
	LEFT JOIN project_members pm ON pm.project_id = p.id`

func (r *PgRepository) Create(ctx context.Context, project domain.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(
		ctx,
		`INSERT INTO projects (id, name, description, course, deadline, goals, status, progress, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(project.ID),
		project.Name,
		project.Description,
		project.Course,
		project.Deadline,
		project.Goals,
		string(project.Status),
		project.Progress,
		string(project.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	_, err = tx.Exec(
		ctx,
		`INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`,
		string(project.ID),
		string(project.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to add creator to project: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Project, error) {
	row := r.pool.QueryRow(ctx, projectSelect+` WHERE p.id = $1 GROUP BY p.id`, string(id))

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (r *PgRepository) FindByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	rows, err := r.pool.Query(
		ctx,
		projectSelect+`
		 WHERE p.created_by = $1
		    OR p.id IN (SELECT project_id FROM project_members WHERE user_id = $1)
		 GROUP BY p.id
		 ORDER BY p.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find projects by member: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return projects, nil
}

func (r *PgRepository) UpdateStatus(ctx context.Context, id domain.ID, status domain.Status, progress int) (domain.Project, error) {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE projects SET status = $2, progress = $3 WHERE id = $1`,
		string(id),
		string(status),
		progress,
	)
	if err != nil {
		return domain.Project{}, fmt.Errorf("failed to update project status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Project{}, ErrProjectNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PgRepository) AddMember(ctx context.Context, projectID domain.ID, userID userdomain.ID) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO project_members (project_id, user_id) VALUES ($1, $2)`,
		string(projectID),
		string(userID),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrAlreadyMember
			case "23503":
				return ErrProjectNotFound
			}
		}
		return fmt.Errorf("failed to add project member: %w", err)
	}
	return nil
}

func scanProject(row pgx.Row) (domain.Project, error) {
	var project domain.Project
	var createdBy, status string
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Course,
		&project.Deadline,
		&project.Goals,
		&status,
		&project.Progress,
		&createdBy,
		&project.CreatedAt,
		&project.MemberIDs,
	)
	if err != nil {
		return domain.Project{}, err
	}
	project.Status = domain.Status(status)
	project.CreatedBy = userdomain.ID(createdBy)
	return project, nil
}
