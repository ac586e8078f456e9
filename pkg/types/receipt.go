package types

import "time"

// ReceiptData is the flat view of a lease used to lay out a rent receipt.
// Dates are already formatted; amounts stay numeric.
type ReceiptData struct {
	LeaseID int64 `json:"-"`

	ReceiptNumber      string   `json:"receiptNumber"`
	RentalType         string   `json:"rentalType"`
	Month              string   `json:"month"`
	LandlordName       string   `json:"landlordName"`
	LandlordAddress    string   `json:"landlordAddress"`
	TenantName         string   `json:"tenantName"`
	TenantAddress      string   `json:"tenantAddress"`
	SignedAt           string   `json:"signedAt"`
	ReceiptDate        string   `json:"receiptDate"`
	RentalAddress      string   `json:"rentalAddress"`
	RentalPeriodStart  string   `json:"rentalPeriodStart"`
	RentalPeriodEnd    string   `json:"rentalPeriodEnd"`
	RentAmount         float64  `json:"rentAmount"`
	RentAmountText     string   `json:"rentAmountText"`
	ChargesAmount      float64  `json:"chargesAmount"`
	EnergyContribution *float64 `json:"energyContribution,omitempty"`
	TotalAmount        float64  `json:"totalAmount"`
	PaymentDate        string   `json:"paymentDate"`
}

// StoredDocument describes an object kept in the user's folder of the bucket.
type StoredDocument struct {
	Key     string    `json:"-"`
	Name    string    `json:"name"`
	URL     string    `json:"url"`
	Created time.Time `json:"created"`
}
