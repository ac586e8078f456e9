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

var accommodationColumns = utils.StructTagValues(types.Accommodation{})

type AccommodationRepository struct {
	pool *pgxpool.Pool
}

func NewAccommodationRepository(pool *pgxpool.Pool) *AccommodationRepository {
	return &AccommodationRepository{pool: pool}
}

func accommodationByIDQuery(id int64) (string, []any, error) {
	return psql().
		Select(accommodationColumns...).
		From(accommodationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
}

// AccommodationByID returns types.ErrNotFound when no row matches.
func (r *AccommodationRepository) AccommodationByID(ctx context.Context, id int64) (*types.Accommodation, error) {
	query, args, err := accommodationByIDQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to generate accommodation query: %w", err)
	}

	var accommodation = new(types.Accommodation)
	err = pgxscan.Get(ctx, r.pool, accommodation, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch accommodation %d: %w", id, err)
	}

	if err != nil {
		return nil, fmt.Errorf("accommodation %d: %w", id, types.ErrNotFound)
	}

	return accommodation, nil
}

func (r *AccommodationRepository) Create(ctx context.Context, accommodation *types.Accommodation) error {
	values := utils.StructToMap(accommodation)
	delete(values, "id")

	query, args, err := psql().
		Insert(accommodationTableName).
		SetMap(values).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create accommodation query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&accommodation.ID)
	return utils.ErrorWrapOrNil(err, "failed to create accommodation")
}
