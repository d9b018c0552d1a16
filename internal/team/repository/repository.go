package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/syncroapp/syncro-backend/internal/team/domain"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

var (
	ErrTeamNotFound  = errors.New("team not found")
	ErrAlreadyMember = errors.New("user already in team")
)

type Repository interface {
	Create(ctx context.Context, team domain.Team) error
	FindByID(ctx context.Context, id domain.ID) (domain.Team, error)
	FindDetails(ctx context.Context, id domain.ID) (domain.Details, error)
	FindByMember(ctx context.Context, userID string) ([]domain.Team, error)
	ListOverviewsByUser(ctx context.Context, userID string) ([]domain.Overview, error)
	AddMember(ctx context.Context, teamID domain.ID, userID userdomain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, team domain.Team) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(
		ctx,
		`INSERT INTO teams (id, name, description, created_by) VALUES ($1, $2, $3, $4)`,
		string(team.ID),
		team.Name,
		team.Description,
		string(team.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	// The creator is always a member.
	_, err = tx.Exec(
		ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		string(team.ID),
		string(team.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("failed to add creator to team: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Team, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT t.id, t.name, t.description, t.created_by, t.created_at,
		        COALESCE(array_agg(tm.user_id::text ORDER BY tm.added_at) FILTER (WHERE tm.user_id IS NOT NULL), '{}')
		 FROM teams t
		 LEFT JOIN team_members tm ON tm.team_id = t.id
		 WHERE t.id = $1
		 GROUP BY t.id`,
		string(id),
	)

	team, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Team{}, ErrTeamNotFound
		}
		return domain.Team{}, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// FindByMember returns every team the user belongs to, rosters included.
// This is the membership lookup the notification fan-out runs per event.
func (r *PgRepository) FindByMember(ctx context.Context, userID string) ([]domain.Team, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT t.id, t.name, t.description, t.created_by, t.created_at,
		        array_agg(tm.user_id::text ORDER BY tm.added_at)
		 FROM teams t
		 JOIN team_members tm ON tm.team_id = t.id
		 WHERE t.id IN (SELECT team_id FROM team_members WHERE user_id = $1)
		 GROUP BY t.id
		 ORDER BY t.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find teams by member: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return teams, nil
}

func (r *PgRepository) FindDetails(ctx context.Context, id domain.ID) (domain.Details, error) {
	team, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.Details{}, err
	}

	details := domain.Details{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatedAt:   team.CreatedAt,
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT u.id, u.name, u.email, u.student_id
		 FROM team_members tm
		 JOIN users u ON u.id = tm.user_id
		 WHERE tm.team_id = $1
		 ORDER BY tm.added_at`,
		string(id),
	)
	if err != nil {
		return domain.Details{}, fmt.Errorf("failed to load team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m userdomain.Summary
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.StudentID); err != nil {
			return domain.Details{}, fmt.Errorf("failed to scan team member: %w", err)
		}
		details.Members = append(details.Members, m)
		if m.ID == team.CreatedBy {
			details.CreatedBy = m
		}
	}

	if rows.Err() != nil {
		return domain.Details{}, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	if details.CreatedBy.ID == "" {
		row := r.pool.QueryRow(
			ctx,
			`SELECT id, name, email, student_id FROM users WHERE id = $1`,
			string(team.CreatedBy),
		)
		if err := row.Scan(&details.CreatedBy.ID, &details.CreatedBy.Name, &details.CreatedBy.Email, &details.CreatedBy.StudentID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return domain.Details{}, fmt.Errorf("failed to load team creator: %w", err)
		}
	}

	return details, nil
}

func (r *PgRepository) ListOverviewsByUser(ctx context.Context, userID string) ([]domain.Overview, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT t.id, t.name, t.description, t.created_at,
		        u.id, u.name, u.email, u.student_id,
		        (SELECT count(*) FROM team_members tm WHERE tm.team_id = t.id)
		 FROM teams t
		 JOIN users u ON u.id = t.created_by
		 WHERE t.created_by = $1
		    OR t.id IN (SELECT team_id FROM team_members WHERE user_id = $1)
		 ORDER BY t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var overviews []domain.Overview
	for rows.Next() {
		var o domain.Overview
		if err := rows.Scan(
			&o.ID,
			&o.Name,
			&o.Description,
			&o.CreatedAt,
			&o.CreatedBy.ID,
			&o.CreatedBy.Name,
			&o.CreatedBy.Email,
			&o.CreatedBy.StudentID,
			&o.MemberCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team overview: %w", err)
		}
		overviews = append(overviews, o)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return overviews, nil
}

func (r *PgRepository) AddMember(ctx context.Context, teamID domain.ID, userID userdomain.ID) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		string(teamID),
		string(userID),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrAlreadyMember
			case "23503":
				return ErrTeamNotFound
			}
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func scanTeam(row pgx.Row) (domain.Team, error) {
	var team domain.Team
	var createdBy string
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&createdBy,
		&team.CreatedAt,
		&team.MemberIDs,
	)
	if err != nil {
		return domain.Team{}, err
	}
	team.CreatedBy = userdomain.ID(createdBy)
	return team, nil
}
