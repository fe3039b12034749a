package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is one row of the sales table. Nullable columns use sql.Null*
// or decimal.NullDecimal so that NULL survives the scan.
type SalesRecord struct {
	TransactionID int64 `db:"transaction_id"`

	CustomerID     sql.NullString `db:"customer_id"`
	CustomerName   sql.NullString `db:"customer_name"`
	PhoneNumber    sql.NullString `db:"phone_number"`
	Gender         sql.NullString `db:"gender"`
	Age            sql.NullInt64  `db:"age"`
	CustomerRegion sql.NullString `db:"customer_region"`
	CustomerType   sql.NullString `db:"customer_type"`

	ProductID       sql.NullString `db:"product_id"`
	ProductName     sql.NullString `db:"product_name"`
	Brand           sql.NullString `db:"brand"`
	ProductCategory sql.NullString `db:"product_category"`
	Tags            sql.NullString `db:"tags"` // comma-joined

	Quantity           sql.NullInt64       `db:"quantity"`
	PricePerUnit       decimal.NullDecimal `db:"price_per_unit"`
	DiscountPercentage decimal.NullDecimal `db:"discount_percentage"`
	TotalAmount        decimal.NullDecimal `db:"total_amount"`
	FinalAmount        decimal.NullDecimal `db:"final_amount"`
	Date               sql.NullTime        `db:"date"`
	PaymentMethod      sql.NullString      `db:"payment_method"`
	OrderStatus        sql.NullString      `db:"order_status"`
	DeliveryType       sql.NullString      `db:"delivery_type"`

	StoreID       sql.NullString `db:"store_id"`
	StoreLocation sql.NullString `db:"store_location"`
	SalespersonID sql.NullString `db:"salesperson_id"`
	EmployeeName  sql.NullString `db:"employee_name"`
}

// SalesColumns lists the table columns in insert/select order.
var SalesColumns = []string{
	"transaction_id", "customer_id", "customer_name", "phone_number", "gender", "age",
	"customer_region", "customer_type", "product_id", "product_name", "brand",
	"product_category", "tags", "quantity", "price_per_unit", "discount_percentage",
	"total_amount", "final_amount", "date", "payment_method", "order_status",
	"delivery_type", "store_id", "store_location", "salesperson_id", "employee_name",
}

// SalesSummary holds sums over a filtered set of sales.
type SalesSummary struct {
	TotalUnits    int64           `db:"total_units"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	TotalDiscount decimal.Decimal `db:"total_discount"`
}

// AgeBounds is the observed age range; both ends are NULL on an empty table.
type AgeBounds struct {
	Min sql.NullInt64 `db:"min_age"`
	Max sql.NullInt64 `db:"max_age"`
}

// SalesLoad is the ingestion-side shape of a record: numeric fields are
// already zero-coalesced and an unparseable date is nil.
type SalesLoad struct {
	TransactionID      int64
	CustomerID         string
	CustomerName       string
	PhoneNumber        string
	Gender             string
	Age                int
	CustomerRegion     string
	CustomerType       string
	ProductID          string
	ProductName        string
	Brand              string
	ProductCategory    string
	Tags               string
	Quantity           int
	PricePerUnit       decimal.Decimal
	DiscountPercentage decimal.Decimal
	TotalAmount        decimal.Decimal
	FinalAmount        decimal.Decimal
	Date               *time.Time
	PaymentMethod      string
	OrderStatus        string
	DeliveryType       string
	StoreID            string
	StoreLocation      string
	SalespersonID      string
	EmployeeName       string
}

// Values returns the insert arguments in SalesColumns order.
func (s *SalesLoad) Values() []interface{} {
	var date interface{}
	if s.Date != nil {
		date = *s.Date
	}
	return []interface{}{
		s.TransactionID, s.CustomerID, s.CustomerName, s.PhoneNumber, s.Gender, s.Age,
		s.CustomerRegion, s.CustomerType, s.ProductID, s.ProductName, s.Brand,
		s.ProductCategory, s.Tags, s.Quantity, s.PricePerUnit, s.DiscountPercentage,
		s.TotalAmount, s.FinalAmount, date, s.PaymentMethod, s.OrderStatus,
		s.DeliveryType, s.StoreID, s.StoreLocation, s.SalespersonID, s.EmployeeName,
	}
}
