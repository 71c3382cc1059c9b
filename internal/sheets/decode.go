package sheets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andresuchdata/salesdash/internal/analytics"
	"github.com/andresuchdata/salesdash/internal/domain"
)

// Column positions of the Sales tab. 10, 11, 13 and 15 are unused.
const (
	salesColCustomerCode = iota
	salesColCompanyName
	salesColSearchName
	salesColCustType
	salesColSalesPerson
	salesColDocID
	salesColPostingDate
	salesColItemCode
	salesColDescription
	salesColPostingGroup
	_
	_
	salesColVendorNo
	_
	salesColQuantity
	_
	salesColUnitPrice
	salesColAmount

	salesMinColumns
)

// Column positions of the Items tab.
const (
	itemsColItemCode = iota
	itemsColDescription
	itemsColInventory
	itemsColBaseUnit
	itemsColUnitCost
	itemsColUnitPrice
	itemsColVendorNo
	itemsColVendor
	itemsColBlocked

	itemsMinColumns = 2
)

// Column positions of the Customers tab.
const (
	customersColCode = iota
	customersColCompanyName
	customersColSearchName
)

// DecodeStats reports how many rows were read and how many were dropped.
type DecodeStats struct {
	Total       int
	Dropped     int
	FirstReason string
}

func (s *DecodeStats) drop(row int, reason string) {
	s.Dropped++
	if s.FirstReason == "" {
		s.FirstReason = fmt.Sprintf("row %d: %s", row, reason)
	}
}

// DecodeSales maps Sales rows into one-item sales. Rows that are too short or
// miss a required field are dropped and counted, never returned as errors.
func DecodeSales(rows [][]string) ([]domain.Sale, DecodeStats) {
	stats := DecodeStats{Total: len(rows)}
	sales := make([]domain.Sale, 0, len(rows))

	for i, row := range rows {
		if len(row) < salesMinColumns {
			stats.drop(i+1, fmt.Sprintf("expected %d columns, got %d", salesMinColumns, len(row)))
			continue
		}

		customer := col(row, salesColCustomerCode)
		docID := col(row, salesColDocID)
		posted := col(row, salesColPostingDate)
		item := col(row, salesColItemCode)
		qty := ParseNumber(col(row, salesColQuantity))

		switch {
		case customer == "":
			stats.drop(i+1, "missing customer code")
			continue
		case docID == "":
			stats.drop(i+1, "missing document id")
			continue
		case posted == "":
			stats.drop(i+1, "missing posting date")
			continue
		case item == "":
			stats.drop(i+1, "missing item code")
			continue
		case qty <= 0:
			stats.drop(i+1, "quantity must be positive")
			continue
		}

		sales = append(sales, domain.Sale{
			ID:              docID,
			Date:            NormalizeDate(posted),
			CustomerCode:    customer,
			CompanyName:     col(row, salesColCompanyName),
			SearchName:      col(row, salesColSearchName),
			SalesPersonCode: col(row, salesColSalesPerson),
			CustType:        col(row, salesColCustType),
			PostingGroup:    col(row, salesColPostingGroup),
			VendorNo:        col(row, salesColVendorNo),
			Items: []domain.SaleItem{{
				ItemCode:    item,
				Description: col(row, salesColDescription),
				Quantity:    qty,
				Price:       ParseNumber(col(row, salesColUnitPrice)),
			}},
			Total: ParseNumber(col(row, salesColAmount)),
		})
	}
	return sales, stats
}

// DecodeProducts maps Items rows into catalog products.
func DecodeProducts(rows [][]string) ([]domain.Product, DecodeStats) {
	stats := DecodeStats{Total: len(rows)}
	products := make([]domain.Product, 0, len(rows))

	for i, row := range rows {
		if len(row) < itemsMinColumns {
			stats.drop(i+1, fmt.Sprintf("expected %d columns, got %d", itemsMinColumns, len(row)))
			continue
		}
		code := col(row, itemsColItemCode)
		if code == "" {
			stats.drop(i+1, "missing item code")
			continue
		}
		products = append(products, domain.Product{
			ItemCode:          code,
			Description:       col(row, itemsColDescription),
			Inventory:         ParseNumber(col(row, itemsColInventory)),
			BaseUnitOfMeasure: col(row, itemsColBaseUnit),
			UnitCost:          ParseNumber(col(row, itemsColUnitCost)),
			UnitPrice:         ParseNumber(col(row, itemsColUnitPrice)),
			VendorNo:          col(row, itemsColVendorNo),
			Vendor:            col(row, itemsColVendor),
			Blocked:           parseBool(col(row, itemsColBlocked)),
		})
	}
	return products, stats
}

// DecodeCustomers maps Customers rows.
func DecodeCustomers(rows [][]string) ([]domain.Customer, DecodeStats) {
	stats := DecodeStats{Total: len(rows)}
	customers := make([]domain.Customer, 0, len(rows))

	for i, row := range rows {
		code := col(row, customersColCode)
		if code == "" {
			stats.drop(i+1, "missing customer code")
			continue
		}
		customers = append(customers, domain.Customer{
			CustomerCode: code,
			CompanyName:  col(row, customersColCompanyName),
			SearchName:   col(row, customersColSearchName),
		})
	}
	return customers, stats
}

func col(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseNumber reads a sheet number, tolerating thousands separators and
// surrounding spaces. Anything unparseable reads as 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.Trim(s, "()")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizeDate rewrites a parseable sheet date as "YYYY-MM-DD" and returns
// anything else unchanged.
func NormalizeDate(s string) string {
	if d, ok := analytics.ParseDate(s); ok {
		return analytics.FormatDate(d)
	}
	return s
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}
