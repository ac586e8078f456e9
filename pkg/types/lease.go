package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Party is a person attached to a lease, either the tenant or the owner of
// the accommodation.
type Party struct {
	ID        int64   `db:"id"`
	FirstName *string `db:"first_name"`
	LastName  *string `db:"last_name"`
	Address   *string `db:"address"`
	Email     *string `db:"email"`
}

type Accommodation struct {
	ID       int64   `db:"id"`
	Type     *string `db:"type"`
	Address  *string `db:"address"`
	OwnerID  *int64  `db:"owner_id"`
	Landlord *Party  `db:"-"`
}

// Lease is a rental agreement. Tenant and Accommodation are nil when the
// referenced rows are missing.
type Lease struct {
	ID                 int64               `db:"id"`
	AccommodationID    int64               `db:"accommodation_id"`
	TenantID           *int64              `db:"tenant_id"`
	Rent               decimal.NullDecimal `db:"rent"`
	Charges            decimal.NullDecimal `db:"charges"`
	EnergyContribution decimal.NullDecimal `db:"energy_contribution"`
	StartDate          *time.Time          `db:"start_date"`
	EndDate            *time.Time          `db:"end_date"`
	PaymentDate        *time.Time          `db:"payment_date"`
	Active             bool                `db:"active"`

	Tenant        *Party         `db:"-"`
	Accommodation *Accommodation `db:"-"`
}
