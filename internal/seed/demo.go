package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*types.Party, error)
	Create(ctx context.Context, user *types.Party) error
}

type AccommodationStore interface {
	Create(ctx context.Context, accommodation *types.Accommodation) error
}

type LeaseStore interface {
	Create(ctx context.Context, lease *types.Lease) error
}

var (
	demoLandlord = types.Party{
		FirstName: utils.StringPtr("John"),
		LastName:  utils.StringPtr("Smith"),
		Address:   utils.StringPtr("1 boulevard du Bail, Lyon"),
		Email:     utils.StringPtr("john.smith+seed@example.com"),
	}
	demoTenant = types.Party{
		FirstName: utils.StringPtr("Jane"),
		LastName:  utils.StringPtr("Doe"),
		Address:   utils.StringPtr("2 rue du Test, Lyon"),
		Email:     utils.StringPtr("jane.doe+seed@example.com"),
	}
)

// Result identifies the rows created by SeedDemoLease.
type Result struct {
	LandlordID      int64
	TenantID        int64
	AccommodationID int64
	LeaseID         int64
	Created         bool
}

// SeedDemoLease creates a landlord, a tenant, a furnished accommodation and an
// active lease covering the month of now. Nothing is written when the demo
// landlord already exists.
func SeedDemoLease(ctx context.Context, users UserStore, accommodations AccommodationStore, leases LeaseStore, now time.Time) (*Result, error) {
	existing, err := users.UserByEmail(ctx, *demoLandlord.Email)
	if err == nil {
		logrus.WithField("landlord_id", existing.ID).Info("demo data already present")
		return &Result{LandlordID: existing.ID}, nil
	}

	if !errors.Is(err, types.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to fetch demo landlord: %w", err)
	}

	landlord := demoLandlord
	if err := users.Create(ctx, &landlord); err != nil {
		return nil, fmt.Errorf("failed to create demo landlord: %w", err)
	}

	tenant := demoTenant
	if err := users.Create(ctx, &tenant); err != nil {
		return nil, fmt.Errorf("failed to create demo tenant: %w", err)
	}

	accommodation := &types.Accommodation{
		Type:    utils.StringPtr("Meublé"),
		Address: utils.StringPtr("3 avenue de la Location, Lyon"),
		OwnerID: &landlord.ID,
	}
	if err := accommodations.Create(ctx, accommodation); err != nil {
		return nil, fmt.Errorf("failed to create demo accommodation: %w", err)
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lease := &types.Lease{
		AccommodationID:    accommodation.ID,
		TenantID:           &tenant.ID,
		Rent:               decimal.NewNullDecimal(decimal.NewFromInt(500)),
		Charges:            decimal.NewNullDecimal(decimal.NewFromInt(50)),
		EnergyContribution: decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
		StartDate:          utils.TimePtr(start),
		EndDate:            utils.TimePtr(start.AddDate(0, 1, -1)),
		PaymentDate:        utils.TimePtr(start.AddDate(0, 0, 4)),
		Active:             true,
	}
	if err := leases.Create(ctx, lease); err != nil {
		return nil, fmt.Errorf("failed to create demo lease: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"landlord_id":      landlord.ID,
		"tenant_id":        tenant.ID,
		"accommodation_id": accommodation.ID,
		"lease_id":         lease.ID,
	}).Info("demo lease seeded")

	return &Result{
		LandlordID:      landlord.ID,
		TenantID:        tenant.ID,
		AccommodationID: accommodation.ID,
		LeaseID:         lease.ID,
		Created:         true,
	}, nil
}
