package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func sampleOrders() []*domain.Order {
	at := time.Date(2026, 4, 2, 15, 4, 5, 0, time.UTC)
	return []*domain.Order{
		{
			ID: "o1", UserID: "u1", Username: "ana", Status: domain.StatusCompleted,
			Total: money.MustNew(3397, 100), CreatedAt: at,
			Lines: []domain.Line{
				{LineNo: 1, ProductID: "p1", ProductName: "Mug, large", Quantity: 2, UnitPrice: money.MustNew(999, 100)},
				{LineNo: 2, ProductID: "p2", ProductName: "Tea", Quantity: 1, UnitPrice: money.MustNew(1399, 100)},
			},
		},
		{ID: "o2", UserID: "u2", Username: "ben", Status: domain.StatusCompleted, Total: money.Zero(), CreatedAt: at.Add(time.Hour)},
	}
}

func writeAll(t *testing.T, f Format) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(f, &buf)
	require.NoError(t, err)
	for _, o := range sampleOrders() {
		require.NoError(t, w.WriteOrder(o))
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, XLSX, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)
	assert.Equal(t, "orders.csv", f.Filename())

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestCSVExport(t *testing.T) {
	records, err := csv.NewReader(bytes.NewReader(writeAll(t, CSV))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"o1", "2026-04-02 15:04:05", "ana", "u1", "completed",
		"p1", "Mug, large", "2", "9.99", "19.98", "33.97",
	}, records[1])
	assert.Equal(t, "13.99", records[2][9])
	assert.Equal(t, []string{
		"o2", "2026-04-02 16:04:05", "ben", "u2", "completed",
		"", "", "", "", "", "0.00",
	}, records[3])
}

func TestXLSXExport(t *testing.T) {
	file, err := xlsx.OpenBinary(writeAll(t, XLSX))
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 4)

	assert.Equal(t, "order_id", sheet.Rows[0].Cells[0].Value)
	first := sheet.Rows[1].Cells
	assert.Equal(t, "o1", first[0].Value)
	assert.Equal(t, "Mug, large", first[6].Value)
	assert.Equal(t, "2", first[7].Value)
	assert.Equal(t, "19.98", first[9].Value)
	assert.Equal(t, "33.97", first[10].Value)
}
