package store

import (
	"context"
	"fmt"

	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

var userColumns = utils.StructTagValues(types.Party{})

// UserRepository reads and writes the people referenced by leases, tenants
// and owners alike.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// UserByEmail returns types.ErrUserNotFound when no user has email.
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*types.Party, error) {
	query, args, err := psql().
		Select(userColumns...).
		From(userTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user types.Party
	err = pgxscan.Get(ctx, r.pool, &user, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// Create inserts the user and sets user.ID from the generated key.
func (r *UserRepository) Create(ctx context.Context, user *types.Party) error {
	values := utils.StructToMap(user)
	delete(values, "id")

	query, args, err := psql().
		Insert(userTableName).
		SetMap(values).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create user query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&user.ID)
	return utils.ErrorWrapOrNil(err, "failed to create user")
}
