package store

import (
	"testing"

	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveLeaseQuery(t *testing.T) {
	query, args, err := activeLeaseQuery(123)
	require.NoError(t, err)

	assert.Contains(t, query, "FROM leases l")
	assert.Contains(t, query, "LEFT JOIN users t ON t.id = l.tenant_id")
	assert.Contains(t, query, "LEFT JOIN accommodations a ON a.id = l.accommodation_id")
	assert.Contains(t, query, "LEFT JOIN users o ON o.id = a.owner_id")
	assert.Contains(t, query, "WHERE l.accommodation_id = $1 AND l.active = $2")
	assert.Contains(t, query, "LIMIT 1")
	assert.Equal(t, []any{int64(123), true}, args)
}

func TestAccommodationByIDQuery(t *testing.T) {
	query, args, err := accommodationByIDQuery(9)
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, type, address, owner_id FROM accommodations WHERE id = $1 LIMIT 1", query)
	assert.Equal(t, []any{int64(9)}, args)
}

func TestLeaseRowToLease_AllRelations(t *testing.T) {
	row := leaseRow{
		Lease:                types.Lease{ID: 1, AccommodationID: 10, Active: true},
		TenantRowID:          utils.Int64Ptr(2),
		TenantFirstName:      utils.StringPtr("Jane"),
		TenantLastName:       utils.StringPtr("Doe"),
		AccommodationRowID:   utils.Int64Ptr(10),
		AccommodationType:    utils.StringPtr("Meublé"),
		AccommodationOwnerID: utils.Int64Ptr(3),
		LandlordRowID:        utils.Int64Ptr(3),
		LandlordFirstName:    utils.StringPtr("John"),
		LandlordAddress:      utils.StringPtr("1 boulevard du Bail, Paris"),
	}

	lease := row.toLease()

	require.NotNil(t, lease.Tenant)
	assert.Equal(t, int64(2), lease.Tenant.ID)
	assert.Equal(t, "Jane", *lease.Tenant.FirstName)

	require.NotNil(t, lease.Accommodation)
	assert.Equal(t, "Meublé", *lease.Accommodation.Type)

	require.NotNil(t, lease.Accommodation.Landlord)
	assert.Equal(t, int64(3), lease.Accommodation.Landlord.ID)
	assert.Nil(t, lease.Accommodation.Landlord.LastName)
}

func TestLeaseRowToLease_MissingRelations(t *testing.T) {
	row := leaseRow{
		Lease:              types.Lease{ID: 1, AccommodationID: 10},
		AccommodationRowID: utils.Int64Ptr(10),
	}

	lease := row.toLease()

	assert.Nil(t, lease.Tenant)
	require.NotNil(t, lease.Accommodation)
	assert.Nil(t, lease.Accommodation.Landlord)
}
