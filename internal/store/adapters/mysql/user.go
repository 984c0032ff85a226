package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/dropDatabas3/socialauth/internal/domain/repository"
)

var _ repository.UserRepository = (*userRepo)(nil)

type userRepo struct{ db *sql.DB }

// errDupEntry es ER_DUP_ENTRY.
const errDupEntry = 1062

const userColumns = `id, social_id, name, email, nick, provider, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*repository.User, error) {
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
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM app_user WHERE `+where+` LIMIT 1`, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: %s: %w", op, err)
	}
	return u, nil
}

func (r *userRepo) FindByExternalID(ctx context.Context, externalID string) ([]repository.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM app_user WHERE social_id = ? ORDER BY created_at`, externalID)
	if err != nil {
		return nil, fmt.Errorf("mysql: find by external id: %w", err)
	}
	defer rows.Close()
	var out []repository.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("mysql: scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *userRepo) FindByProviderID(ctx context.Context, provider repository.Provider, externalID string) (*repository.User, error) {
	return r.findOne(ctx, "find by provider id", `provider = ? AND social_id = ?`, string(provider), externalID)
}

func (r *userRepo) FindByNick(ctx context.Context, nick string) (*repository.User, error) {
	return r.findOne(ctx, "find by nick", `nick = ?`, nick)
}

func (r *userRepo) FindByEmailAndProvider(ctx context.Context, email string, provider repository.Provider) (*repository.User, error) {
	return r.findOne(ctx, "find by email", `email = ? AND provider = ?`, email, string(provider))
}

func (r *userRepo) Create(ctx context.Context, in repository.CreateUserInput) (*repository.User, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	u := repository.User{
		ID:         uuid.NewString(),
		ExternalID: in.ExternalID,
		Name:       in.Name,
		Email:      in.Email,
		Nick:       in.Nick,
		Provider:   in.Provider,
		CreatedAt:  createdAt.UTC().Truncate(time.Microsecond),
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_user (id, social_id, name, email, nick, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.ExternalID, u.Name, u.Email, u.Nick, string(u.Provider), u.CreatedAt,
	)
	if err != nil {
		var myErr *mysqldrv.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errDupEntry {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("mysql: create user: %w", err)
	}
	return &u, nil
}
