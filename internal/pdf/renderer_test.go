package pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"rentreceipt/internal/utils"
	"rentreceipt/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *types.ReceiptData {
	return &types.ReceiptData{
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
	}
}

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()

	r, err := NewRenderer(opts)
	require.NoError(t, err)
	r.Now = func() time.Time { return time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC) }
	return r
}

func assertPDF(t *testing.T, out []byte) {
	t.Helper()

	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing pdf header")
	assert.Contains(t, string(bytes.TrimSpace(out[len(out)-16:])), "%%EOF")
}

func testLogo(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 31, G: 64, B: 112, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestRender(t *testing.T) {
	out, err := newTestRenderer(t, Options{}).Render(sampleData())
	require.NoError(t, err)
	assertPDF(t, out)
}

func TestRender_WithEnergyContribution(t *testing.T) {
	data := sampleData()
	data.EnergyContribution = utils.Float64Ptr(12.5)

	withEnergy, err := newTestRenderer(t, Options{}).Render(data)
	require.NoError(t, err)
	assertPDF(t, withEnergy)

	without, err := newTestRenderer(t, Options{}).Render(sampleData())
	require.NoError(t, err)

	assert.NotEqual(t, without, withEnergy)
}

func TestRender_EmptyData(t *testing.T) {
	out, err := newTestRenderer(t, Options{}).Render(&types.ReceiptData{})
	require.NoError(t, err)
	assertPDF(t, out)
}

func TestRender_LongAddressesStayOnOnePage(t *testing.T) {
	data := sampleData()
	long := "Résidence des Tilleuls, bâtiment C, escalier 4, appartement 1207, 145 avenue du Général de Gaulle, 69003 Lyon"
	data.LandlordAddress = long
	data.TenantAddress = long
	data.RentalAddress = long

	out, err := newTestRenderer(t, Options{}).Render(data)
	require.NoError(t, err)
	assertPDF(t, out)
	assert.Equal(t, 1, bytes.Count(out, []byte("/Type /Page\n")))
}

func TestRender_NilData(t *testing.T) {
	out, err := newTestRenderer(t, Options{}).Render(nil)
	assert.Error(t, err)
	assert.Nil(t, out)
}

func TestRender_WithLogo(t *testing.T) {
	out, err := newTestRenderer(t, Options{Logo: testLogo(t)}).Render(sampleData())
	require.NoError(t, err)
	assertPDF(t, out)
}

func TestNewRenderer_InvalidLogo(t *testing.T) {
	r, err := NewRenderer(Options{Logo: []byte("not an image")})
	assert.Error(t, err)
	assert.Nil(t, r)
}

func TestAmount(t *testing.T) {
	r := newTestRenderer(t, Options{})

	assert.Equal(t, "500,00", r.amount(500))
	assert.Equal(t, "12,50", r.amount(12.5))
	assert.Equal(t, "1 234,56", r.amount(1234.56))
	assert.Equal(t, "550,00 dollars", newTestRenderer(t, Options{Currency: "dollars"}).money(550))
}
