package analytics

import (
	"time"

	"github.com/andresuchdata/salesdash/internal/domain"
)

func sale(id, date, customer, salesPerson, custType, group, item string, qty, price, total float64) domain.Sale {
	return domain.Sale{
		ID:              id,
		Date:            date,
		CustomerCode:    customer,
		CompanyName:     customer + " Co., Ltd.",
		SearchName:      customer,
		SalesPersonCode: salesPerson,
		CustType:        custType,
		PostingGroup:    group,
		VendorNo:        "V-" + group,
		Items: []domain.SaleItem{{
			ItemCode:    item,
			Description: "desc " + item,
			Quantity:    qty,
			Price:       price,
		}},
		Total: total,
	}
}

func fixtureSales() []domain.Sale {
	return []domain.Sale{
		sale("INV-1", "2024-01-05", "C001", "SP1", "HOTEL", "WINE", "W-01", 2, 100, 210),
		sale("INV-1", "2024-01-05", "C001", "SP1", "HOTEL", "SPIRIT", "S-01", 1, 500, 480),
		sale("INV-2", "2024-01-20", "C002", "SP2", "REST", "WINE", "W-01", 3, 90, 270),
		sale("INV-3", "2024-02-02", "C001", "SP1", "HOTEL", "WINE", "W-02", 4, 50, 200),
		sale("INV-4", "2024-02-14", "C003", "SP2", "", "SPIRIT", "S-01", 1, 520, 520),
		sale("INV-5", "2024-03-30", "C002", "SP2", "REST", "", "", 5, 10, 50),
	}
}

func domainRange(start, end time.Time) domain.DateRange {
	return domain.DateRange{Start: start, End: end}
}
