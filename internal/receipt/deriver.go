// Package receipt turns a lease into the flat data printed on a rent receipt.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"

	DefaultRentalType = "Location"
	DefaultCurrency   = "euros"
	UnknownPlace      = "Lieu inconnu"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// Derive builds the receipt data for lease as of now. It has no side effects.
//
// Defaults when a source value is missing:
//   - rental type: "Location"
//   - month: month of now
//   - names, addresses, dates: empty string
//   - signing place: "Lieu inconnu"
//   - rent, charges: 0
//   - energy contribution: nil
func Derive(lease *types.Lease, now time.Time, currency string) (*types.ReceiptData, error) {
	if lease == nil {
		return nil, fmt.Errorf("lease: %w", types.ErrNotFound)
	}

	if lease.Tenant == nil {
		return nil, fmt.Errorf("lease %d is missing tenant information: %w", lease.ID, types.ErrIncompleteRecord)
	}

	if lease.Accommodation == nil {
		return nil, fmt.Errorf("lease %d is missing its accommodation: %w", lease.ID, types.ErrIncompleteRecord)
	}

	if lease.Accommodation.Landlord == nil {
		return nil, fmt.Errorf("lease %d is missing landlord information: %w", lease.ID, types.ErrIncompleteRecord)
	}

	if currency == "" {
		currency = DefaultCurrency
	}

	tenant := lease.Tenant
	property := lease.Accommodation
	landlord := lease.Accommodation.Landlord

	rent := amount(lease.Rent)
	charges := amount(lease.Charges)

	rentalType := strings.TrimSpace(utils.PtrString(property.Type))
	if rentalType == "" {
		rentalType = DefaultRentalType
	}

	monthOf := now
	if lease.StartDate != nil {
		monthOf = *lease.StartDate
	}

	data := &types.ReceiptData{
		LeaseID:           lease.ID,
		ReceiptNumber:     fmt.Sprintf("Q-%d", lease.ID),
		RentalType:        rentalType,
		Month:             MonthLabel(monthOf),
		LandlordName:      fullName(landlord),
		LandlordAddress:   utils.PtrString(landlord.Address),
		TenantName:        fullName(tenant),
		TenantAddress:     utils.PtrString(tenant.Address),
		SignedAt:          signingPlace(landlord.Address),
		ReceiptDate:       now.Format(dateLayout),
		RentalAddress:     utils.PtrString(property.Address),
		RentalPeriodStart: formatDate(lease.StartDate),
		RentalPeriodEnd:   formatDate(lease.EndDate),
		RentAmount:        rent,
		RentAmountText:    fmt.Sprintf("%.2f %s", rent, currency),
		ChargesAmount:     charges,
		TotalAmount:       rent + charges,
		PaymentDate:       formatDate(lease.PaymentDate),
	}

	if lease.EnergyContribution.Valid {
		data.EnergyContribution = utils.Float64Ptr(lease.EnergyContribution.Decimal.InexactFloat64())
	}

	return data, nil
}

// MonthLabel formats t as a French "month year" label, e.g. "avril 2024".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", frenchMonths[t.Month()-1], t.Year())
}

func fullName(p *types.Party) string {
	return strings.TrimSpace(utils.PtrString(p.FirstName) + " " + utils.PtrString(p.LastName))
}

// signingPlace is the first comma separated segment of the landlord address.
func signingPlace(address *string) string {
	if address == nil {
		return UnknownPlace
	}

	place, _, _ := strings.Cut(*address, ",")
	place = strings.TrimSpace(place)
	if place == "" {
		return UnknownPlace
	}

	return place
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func amount(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}
