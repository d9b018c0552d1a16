package repository

import (
	"context"
	"fmt"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/syncroapp/syncro-backend/internal/checkin/domain"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type Repository interface {
	Create(ctx context.Context, checkin domain.Checkin) error
	FindByUser(ctx context.Context, userID string, limit int) ([]domain.Checkin, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, checkin domain.Checkin) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO checkins (id, user_id, mood, energy, blockers, next_steps, work_done, hours_worked, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(checkin.ID),
		string(checkin.UserID),
		checkin.Mood,
		checkin.Energy,
		checkin.Blockers,
		checkin.NextSteps,
		checkin.WorkDone,
		checkin.HoursWorked,
		checkin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create check-in: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByUser(ctx context.Context, userID string, limit int) ([]domain.Checkin, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, mood, energy, blockers, next_steps, work_done, hours_worked, created_at
		 FROM checkins
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find check-ins: %w", err)
	}
	defer rows.Close()

	var checkins []domain.Checkin
	for rows.Next() {
		checkin, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		checkins = append(checkins, checkin)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}

	return checkins, nil
}

func scanCheckin(row pgx.Row) (domain.Checkin, error) {
	var checkin domain.Checkin
	var userID string
	err := row.Scan(
		&checkin.ID,
		&userID,
		&checkin.Mood,
		&checkin.Energy,
		&checkin.Blockers,
		&checkin.NextSteps,
		&checkin.WorkDone,
		&checkin.HoursWorked,
		&checkin.CreatedAt,
	)
	if err != nil {
		return domain.Checkin{}, err
	}
	checkin.UserID = userdomain.ID(userID)
	return checkin, nil
}
