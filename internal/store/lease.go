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

// leaseRow is one lease joined with its tenant, accommodation and owner. The
// joined columns are all nullable so a missing relation shows up as a nil ID.
type leaseRow struct {
	types.Lease

	TenantRowID     *int64  `db:"tenant_row_id"`
	TenantFirstName *string `db:"tenant_first_name"`
	TenantLastName  *string `db:"tenant_last_name"`
	TenantAddress   *string `db:"tenant_address"`
	TenantEmail     *string `db:"tenant_email"`

	AccommodationRowID   *int64  `db:"accommodation_row_id"`
	AccommodationType    *string `db:"accommodation_type"`
	AccommodationAddress *string `db:"accommodation_address"`
	AccommodationOwnerID *int64  `db:"accommodation_owner_id"`

	LandlordRowID     *int64  `db:"landlord_row_id"`
	LandlordFirstName *string `db:"landlord_first_name"`
	LandlordLastName  *string `db:"landlord_last_name"`
	LandlordAddress   *string `db:"landlord_address"`
	LandlordEmail     *string `db:"landlord_email"`
}

var leaseSelectColumns = []string{
	"l.id",
	"l.accommodation_id",
	"l.tenant_id",
	"l.rent",
	"l.charges",
	"l.energy_contribution",
	"l.start_date",
	"l.end_date",
	"l.payment_date",
	"l.active",
	"t.id AS tenant_row_id",
	"t.first_name AS tenant_first_name",
	"t.last_name AS tenant_last_name",
	"t.address AS tenant_address",
	"t.email AS tenant_email",
	"a.id AS accommodation_row_id",
	"a.type AS accommodation_type",
	"a.address AS accommodation_address",
	"a.owner_id AS accommodation_owner_id",
	"o.id AS landlord_row_id",
	"o.first_name AS landlord_first_name",
	"o.last_name AS landlord_last_name",
	"o.address AS landlord_address",
	"o.email AS landlord_email",
}

type LeaseRepository struct {
	pool *pgxpool.Pool
}

func NewLeaseRepository(pool *pgxpool.Pool) *LeaseRepository {
	return &LeaseRepository{pool: pool}
}

func activeLeaseQuery(accommodationID int64) (string, []any, error) {
	return psql().
		Select(leaseSelectColumns...).
		From(leaseTableName + " l").
		LeftJoin(userTableName + " t ON t.id = l.tenant_id").
		LeftJoin(accommodationTableName + " a ON a.id = l.accommodation_id").
		LeftJoin(userTableName + " o ON o.id = a.owner_id").
		Where(sq.Eq{"l.accommodation_id": accommodationID, "l.active": true}).
		OrderBy("l.start_date DESC NULLS LAST", "l.id DESC").
		Limit(1).
		ToSql()
}

// ActiveLeaseByAccommodation loads the current active lease of an
// accommodation with its relations. It returns types.ErrNotFound when the
// accommodation has no active lease.
func (r *LeaseRepository) ActiveLeaseByAccommodation(ctx context.Context, accommodationID int64) (*types.Lease, error) {
	query, args, err := activeLeaseQuery(accommodationID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate active lease query: %w", err)
	}

	var row leaseRow
	err = pgxscan.Get(ctx, r.pool, &row, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch active lease for accommodation %d: %w", accommodationID, err)
	}

	if err != nil {
		return nil, fmt.Errorf("active lease for accommodation %d: %w", accommodationID, types.ErrNotFound)
	}

	return row.toLease(), nil
}

func (row *leaseRow) toLease() *types.Lease {
	lease := row.Lease

	if row.TenantRowID != nil {
		lease.Tenant = &types.Party{
			ID:        *row.TenantRowID,
			FirstName: row.TenantFirstName,
			LastName:  row.TenantLastName,
			Address:   row.TenantAddress,
			Email:     row.TenantEmail,
		}
	}

	if row.AccommodationRowID != nil {
		lease.Accommodation = &types.Accommodation{
			ID:      *row.AccommodationRowID,
			Type:    row.AccommodationType,
			Address: row.AccommodationAddress,
			OwnerID: row.AccommodationOwnerID,
		}

		if row.LandlordRowID != nil {
			lease.Accommodation.Landlord = &types.Party{
				ID:        *row.LandlordRowID,
				FirstName: row.LandlordFirstName,
				LastName:  row.LandlordLastName,
				Address:   row.LandlordAddress,
				Email:     row.LandlordEmail,
			}
		}
	}

	return &lease
}

// Create inserts the lease and sets lease.ID from the generated key.
func (r *LeaseRepository) Create(ctx context.Context, lease *types.Lease) error {
	values := utils.StructToMap(lease)
	delete(values, "id")

	query, args, err := psql().
		Insert(leaseTableName).
		SetMap(values).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate create lease query: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&lease.ID)
	return utils.ErrorWrapOrNil(err, "failed to create lease")
}
