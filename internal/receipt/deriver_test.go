package receipt

import (
	"errors"
	"testing"
	"time"

	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.May, 3, 10, 30, 0, 0, time.UTC)

func money(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func baseLease() *types.Lease {
	return &types.Lease{
		ID:              1,
		AccommodationID: 123,
		Rent:            money("500.00"),
		Charges:         money("50.00"),
		StartDate:       utils.TimePtr(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
		EndDate:         utils.TimePtr(time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)),
		PaymentDate:     utils.TimePtr(time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)),
		Active:          true,
		Tenant: &types.Party{
			ID:        2,
			FirstName: utils.StringPtr("Jane"),
			LastName:  utils.StringPtr("Doe"),
			Address:   utils.StringPtr("2 rue du Test"),
		},
		Accommodation: &types.Accommodation{
			ID:      123,
			Type:    utils.StringPtr("Meublé"),
			Address: utils.StringPtr("3 avenue de la Location"),
			Landlord: &types.Party{
				ID:        3,
				FirstName: utils.StringPtr("John"),
				LastName:  utils.StringPtr("Smith"),
				Address:   utils.StringPtr("1 boulevard du Bail, Lyon"),
			},
		},
	}
}

func TestDerive_FormatsLease(t *testing.T) {
	data, err := Derive(baseLease(), fixedNow, "")
	require.NoError(t, err)

	assert.Equal(t, &types.ReceiptData{
		LeaseID:           1,
		ReceiptNumber:     "Q-1",
		RentalType:        "Meublé",
		Month:             "avril 2024",
		LandlordName:      "John Smith",
		LandlordAddress:   "1 boulevard du Bail, Lyon",
		TenantName:        "Jane Doe",
		TenantAddress:     "2 rue du Test",
		SignedAt:          "1 boulevard du Bail",
		ReceiptDate:       "2024-05-03",
		RentalAddress:     "3 avenue de la Location",
		RentalPeriodStart: "2024-04-01",
		RentalPeriodEnd:   "2024-04-30",
		RentAmount:        500,
		RentAmountText:    "500.00 euros",
		ChargesAmount:     50,
		TotalAmount:       550,
		PaymentDate:       "2024-04-05",
	}, data)
}

func TestDerive_TotalIsRentPlusCharges(t *testing.T) {
	cases := []struct{ rent, charges string }{
		{"500", "50"},
		{"0", "0"},
		{"812.37", "64.15"},
		{"1200.5", "0.01"},
		{"99999.99", "12345.67"},
	}

	for _, tc := range cases {
		lease := baseLease()
		lease.Rent = money(tc.rent)
		lease.Charges = money(tc.charges)

		data, err := Derive(lease, fixedNow, "euros")
		require.NoError(t, err)
		assert.Equal(t, data.RentAmount+data.ChargesAmount, data.TotalAmount, "rent=%s charges=%s", tc.rent, tc.charges)
	}
}

func TestDerive_Defaults(t *testing.T) {
	lease := baseLease()
	lease.StartDate = nil
	lease.EndDate = nil
	lease.PaymentDate = nil
	lease.Rent = decimal.NullDecimal{}
	lease.Charges = decimal.NullDecimal{}
	lease.Tenant.FirstName = nil
	lease.Tenant.Address = nil
	lease.Accommodation.Type = nil
	lease.Accommodation.Landlord.Address = nil

	data, err := Derive(lease, fixedNow, "dollars")
	require.NoError(t, err)

	assert.Equal(t, "Location", data.RentalType)
	assert.Equal(t, "mai 2024", data.Month)
	assert.Equal(t, "Doe", data.TenantName)
	assert.Equal(t, "", data.TenantAddress)
	assert.Equal(t, UnknownPlace, data.SignedAt)
	assert.Equal(t, "", data.RentalPeriodStart)
	assert.Equal(t, "", data.RentalPeriodEnd)
	assert.Equal(t, "", data.PaymentDate)
	assert.Equal(t, 0.0, data.TotalAmount)
	assert.Equal(t, "0.00 dollars", data.RentAmountText)
	assert.Nil(t, data.EnergyContribution)
}

func TestDerive_BlankLandlordAddressFallsBack(t *testing.T) {
	lease := baseLease()
	lease.Accommodation.Landlord.Address = utils.StringPtr("  , Lyon")

	data, err := Derive(lease, fixedNow, "")
	require.NoError(t, err)
	assert.Equal(t, UnknownPlace, data.SignedAt)
}

func TestDerive_EnergyContribution(t *testing.T) {
	lease := baseLease()
	lease.EnergyContribution = money("12.50")

	data, err := Derive(lease, fixedNow, "")
	require.NoError(t, err)
	require.NotNil(t, data.EnergyContribution)
	assert.Equal(t, 12.5, *data.EnergyContribution)
	assert.Equal(t, 550.0, data.TotalAmount)
}

func TestDerive_IncompleteRecord(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Lease)
	}{
		{"missing tenant", func(l *types.Lease) { l.Tenant = nil }},
		{"missing accommodation", func(l *types.Lease) { l.Accommodation = nil }},
		{"missing landlord", func(l *types.Lease) { l.Accommodation.Landlord = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lease := baseLease()
			tt.mutate(lease)

			data, err := Derive(lease, fixedNow, "")
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, types.ErrIncompleteRecord), "got %v", err)
		})
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "janvier 2023", MonthLabel(time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "août 2025", MonthLabel(time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "décembre 2024", MonthLabel(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
