package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shophub/shopctl/internal/models"
)

func exportOrders() []models.Order {
	return []models.Order{
		{
			OrderID:       "ORD-1",
			UserID:        "u1",
			Status:        models.OrderStatusDelivered,
			PaymentStatus: models.PaymentStatusCompleted,
			PaymentMethod: "card",
			TrackingID:    "TRK-1",
			Items: []models.OrderItem{
				{Name: "Mouse", Quantity: 2},
				{Name: "Hub", Quantity: 1},
			},
			Subtotal:        decimal.RequireFromString("45.00"),
			Total:           decimal.RequireFromString("52.50"),
			ShippingAddress: models.ShippingAddress{City: "Dhaka", Country: "BD"},
			CreatedAt:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			OrderID: "ORD-2",
			UserID:  "u1",
			Status:  models.OrderStatusProcessing,
			Total:   decimal.RequireFromString("10.00"),
		},
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	e, err := New(FormatCSV, path)
	require.NoError(t, err)

	n, err := e.Export(exportOrders())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two rows")
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "ORD-1", rows[1][0])
	assert.Equal(t, "3", rows[1][6], "item_count sums quantities")
	assert.Equal(t, "Mouse; Hub", rows[1][7])
	assert.Equal(t, "52.5", rows[1][11])
}

func TestExportJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	e, err := New(FormatJSON, path)
	require.NoError(t, err)

	n, err := e.Export(exportOrders())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var order models.Order
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &order))
	assert.Equal(t, "ORD-1", order.OrderID)
	assert.Equal(t, models.OrderStatusDelivered, order.Status)
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := New("xml", "orders.xml")
	assert.Error(t, err)
}
