package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/syncroapp/syncro-backend/internal/user/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.User, error)
	FindByStudentID(ctx context.Context, studentID string) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const userColumns = `id, name, email, student_id, major, year, role, password_hash, avatar, created_at`

func (r *PgRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, name, email, student_id, major, year, role, password_hash, avatar)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(user.ID),
		user.Name,
		user.Email,
		user.StudentID,
		user.Major,
		user.Year,
		user.Role,
		user.PasswordHash,
		user.Avatar,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailAlreadyInUse
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, string(id))
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByIdentifier resolves a user by student id or email, matching the
// add-member lookup the frontend performs.
func (r *PgRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	return r.findOne(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE student_id = $1 OR email = $1`,
		identifier,
	)
}

func (r *PgRepository) FindByStudentID(ctx context.Context, studentID string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE student_id = $1`, studentID)
}

func (r *PgRepository) findOne(ctx context.Context, query string, arg string) (domain.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.StudentID,
		&user.Major,
		&user.Year,
		&user.Role,
		&user.PasswordHash,
		&user.Avatar,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
