package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func salesRow(customer, doc, date, item, qty, price, amount string) []string {
	row := make([]string, 18)
	row[salesColCustomerCode] = customer
	row[salesColCompanyName] = "Smith, Inc."
	row[salesColSearchName] = "SMITH"
	row[salesColCustType] = "HOTEL"
	row[salesColSalesPerson] = "SP1"
	row[salesColDocID] = doc
	row[salesColPostingDate] = date
	row[salesColItemCode] = item
	row[salesColDescription] = "Red wine"
	row[salesColPostingGroup] = "WINE"
	row[10] = "ignored"
	row[salesColVendorNo] = "V001"
	row[salesColQuantity] = qty
	row[salesColUnitPrice] = price
	row[salesColAmount] = amount
	return row
}

func TestDecodeSales(t *testing.T) {
	rows := [][]string{
		salesRow("C001", "INV-1", "3/5/2024", "W-01", "2", "1,234.50", "2,469.00"),
		salesRow("C002", "INV-2", "2024-03-06", "W-02", "1", "100", "100"),
	}

	sales, stats := DecodeSales(rows)
	require.Len(t, sales, 2)
	assert.Equal(t, DecodeStats{Total: 2}, stats)

	s := sales[0]
	assert.Equal(t, "INV-1", s.ID)
	assert.Equal(t, "2024-03-05", s.Date)
	assert.Equal(t, "C001", s.CustomerCode)
	assert.Equal(t, "Smith, Inc.", s.CompanyName)
	assert.Equal(t, "SMITH", s.SearchName)
	assert.Equal(t, "HOTEL", s.CustType)
	assert.Equal(t, "SP1", s.SalesPersonCode)
	assert.Equal(t, "WINE", s.PostingGroup)
	assert.Equal(t, "V001", s.VendorNo)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "W-01", s.Items[0].ItemCode)
	assert.Equal(t, "Red wine", s.Items[0].Description)
	assert.InDelta(t, 2.0, s.Items[0].Quantity, 1e-9)
	assert.InDelta(t, 1234.5, s.Items[0].Price, 1e-9)
	assert.InDelta(t, 2469.0, s.Total, 1e-9)
}

func TestDecodeSalesDropsMalformedRows(t *testing.T) {
	rows := [][]string{
		{"C001", "short row"},
		salesRow("", "INV-1", "2024-03-05", "W-01", "1", "1", "1"),
		salesRow("C001", "", "2024-03-05", "W-01", "1", "1", "1"),
		salesRow("C001", "INV-1", "", "W-01", "1", "1", "1"),
		salesRow("C001", "INV-1", "2024-03-05", "", "1", "1", "1"),
		salesRow("C001", "INV-1", "2024-03-05", "W-01", "0", "1", "1"),
		salesRow("C001", "INV-1", "2024-03-05", "W-01", "abc", "1", "1"),
		salesRow("C001", "INV-9", "2024-03-05", "W-01", "1", "1", "1"),
	}

	sales, stats := DecodeSales(rows)
	require.Len(t, sales, 1)
	assert.Equal(t, "INV-9", sales[0].ID)
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 7, stats.Dropped)
	assert.Contains(t, stats.FirstReason, "row 1")
}

func TestDecodeSalesKeepsUnparseableDate(t *testing.T) {
	sales, _ := DecodeSales([][]string{salesRow("C001", "INV-1", "Invalid Date", "W-01", "1", "1", "1")})
	require.Len(t, sales, 1)
	assert.Equal(t, "Invalid Date", sales[0].Date)
}

func TestDecodeProducts(t *testing.T) {
	rows := [][]string{
		{"W-01", "Red wine", "-3", "BTL", "80", "120", "V001", "Vineyard Co", "No"},
		{"W-02", "White wine"},
		{"", "no code"},
		{"X"},
		{"S-01", "Spirit", "10", "BTL", "200", "350", "V002", "Distillery", "Yes"},
	}

	products, stats := DecodeProducts(rows)
	require.Len(t, products, 3)
	assert.Equal(t, 2, stats.Dropped)

	assert.Equal(t, "W-01", products[0].ItemCode)
	assert.InDelta(t, -3.0, products[0].Inventory, 1e-9)
	assert.Equal(t, "BTL", products[0].BaseUnitOfMeasure)
	assert.InDelta(t, 120.0, products[0].UnitPrice, 1e-9)
	assert.False(t, products[0].Blocked)

	assert.Equal(t, "White wine", products[1].Description)
	assert.Zero(t, products[1].Inventory)

	assert.True(t, products[2].Blocked)
	assert.Equal(t, "Distillery", products[2].Vendor)
}

func TestDecodeCustomers(t *testing.T) {
	customers, stats := DecodeCustomers([][]string{
		{"C001", "Smith, Inc.", "SMITH"},
		{"C002"},
		{""},
		{},
	})
	require.Len(t, customers, 2)
	assert.Equal(t, 2, stats.Dropped)
	assert.Equal(t, "SMITH", customers[0].SearchName)
	assert.Empty(t, customers[1].CompanyName)
}

func TestParseNumber(t *testing.T) {
	cases := map[string]float64{
		"":          0,
		"12":        12,
		" 1,234.50": 1234.5,
		"1 000":     1000,
		"(250)":     -250,
		"-3.5":      -3.5,
		"n/a":       0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, ParseNumber(in), 1e-9, in)
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-12-01", NormalizeDate("12/1/2024"))
	assert.Equal(t, "2024-12-01", NormalizeDate("2024-12-01T10:00:00"))
	assert.Equal(t, "yesterday", NormalizeDate("yesterday"))
}
