// internal/domain/sales.go
package domain

// SaleItem is a single invoice line item.
type SaleItem struct {
	ItemCode    string  `json:"item_code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Sale is one row of a customer's invoice. Several records may share the same
// ID when an invoice has more than one line. After normalization Items always
// holds exactly one entry.
type Sale struct {
	ID              string     `json:"id"`
	Date            string     `json:"date"`
	CustomerCode    string     `json:"customer_code"`
	CompanyName     string     `json:"company_name"`
	SearchName      string     `json:"search_name"`
	SalesPersonCode string     `json:"sales_person_code"`
	CustType        string     `json:"cust_type"`
	PostingGroup    string     `json:"posting_group"`
	VendorNo        string     `json:"vendor_no"`
	Items           []SaleItem `json:"items"`
	// Total comes straight from the source amount column and is not
	// reconciled with quantity * price.
	Total float64 `json:"total"`
}

// Product is a catalog entry from the Items sheet.
type Product struct {
	ItemCode          string   `json:"item_code"`
	Description       string   `json:"description"`
	Inventory         float64  `json:"inventory"`
	BaseUnitOfMeasure string   `json:"base_unit_of_measure"`
	UnitCost          float64  `json:"unit_cost"`
	UnitPrice         float64  `json:"unit_price"`
	VendorNo          string   `json:"vendor_no"`
	Vendor            string   `json:"vendor"`
	Blocked           bool     `json:"blocked"`
	ModifiedPrice     *float64 `json:"modified_price,omitempty"`
}

// Customer is an entry from the Customers sheet.
type Customer struct {
	CustomerCode string `json:"customer_code"`
	CompanyName  string `json:"company_name"`
	SearchName   string `json:"search_name"`
}
