package receipt

import (
	"context"
	"time"

	"rentreceipt/pkg/types"
)

type AccommodationFinder interface {
	AccommodationByID(ctx context.Context, id int64) (*types.Accommodation, error)
}

type LeaseFinder interface {
	ActiveLeaseByAccommodation(ctx context.Context, accommodationID int64) (*types.Lease, error)
}

// Service loads the active lease behind an accommodation id and derives its
// receipt data.
type Service struct {
	accommodations AccommodationFinder
	leases         LeaseFinder
	currency       string

	// Now is the clock used for the receipt date. Tests replace it.
	Now func() time.Time
}

func NewService(accommodations AccommodationFinder, leases LeaseFinder, currency string) *Service {
	return &Service{
		accommodations: accommodations,
		leases:         leases,
		currency:       currency,
		Now:            time.Now,
	}
}

// Build resolves id to an accommodation, loads its active lease and derives
// the receipt data. Missing rows surface as types.ErrNotFound, missing
// relations as types.ErrIncompleteRecord.
func (s *Service) Build(ctx context.Context, id int64) (*types.ReceiptData, error) {
	accommodation, err := s.accommodations.AccommodationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lease, err := s.leases.ActiveLeaseByAccommodation(ctx, accommodation.ID)
	if err != nil {
		return nil, err
	}

	return Derive(lease, s.Now(), s.currency)
}
