package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ pool *pgxpool.Pool }

const userColumns = `id::text, social_id, name, email, nick, provider, created_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	var provider string
	if err := row.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.Nick, &provider, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Provider = repository.Provider(provider)
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func (r *userRepo) findOne(ctx context.Context, op, where string, args ...any) (*repository.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE `+where+` LIMIT 1`, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: %s: %w", op, err)
	}
	return u, nil
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) ([]repository.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM app_user WHERE social_id = $1 ORDER BY created_at`, externalID)
	if err != nil {
		return nil, fmt.Errorf("pg: find by external id: %w", err)
	}
	defer rows.Close()
	var out []repository.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *userRepo) FindByProviderID(ctx context.Context, provider repository.Provider, externalID string) (*repository.User, error) {
	return r.findOne(ctx, "find by provider id", `provider = $1 AND social_id = $2`, string(provider), externalID)
}

func (r *userRepo) FindByNick(ctx context.Context, nick string) (*repository.User, error) {
	return r.findOne(ctx, "find by nick", `nick = $1`, nick)
}

func (r *userRepo) FindByEmailAndProvider(ctx context.Context, email string, provider repository.Provider) (*repository.User, error) {
	return r.findOne(ctx, "find by email", `email = $1 AND provider = $2`, email, string(provider))
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	u, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO app_user (id, social_id, name, email, nick, provider, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		uuid.NewString(), in.ExternalID, in.Name, in.Email, in.Nick, string(in.Provider), createdAt.UTC(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("pg: create user: %w", err)
	}
	return u, nil
}
