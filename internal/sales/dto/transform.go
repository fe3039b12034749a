package dto

import (
	"database/sql"

	"github.com/fekuna/omnipos-sales-service/internal/model"
	"github.com/shopspring/decimal"
)

// NewSalesRecord renames storage columns to the API shape and converts the
// numeric columns. NULL stays nil; nothing is zero-filled here.
func NewSalesRecord(m *model.SalesRecord) SalesRecord {
	r := SalesRecord{
		TransactionID:      m.TransactionID,
		CustomerID:         str(m.CustomerID),
		CustomerName:       str(m.CustomerName),
		PhoneNumber:        str(m.PhoneNumber),
		Gender:             str(m.Gender),
		Age:                integer(m.Age),
		CustomerRegion:     str(m.CustomerRegion),
		CustomerType:       str(m.CustomerType),
		ProductID:          str(m.ProductID),
		ProductName:        str(m.ProductName),
		Brand:              str(m.Brand),
		ProductCategory:    str(m.ProductCategory),
		Tags:               str(m.Tags),
		Quantity:           integer(m.Quantity),
		PricePerUnit:       float(m.PricePerUnit),
		DiscountPercentage: float(m.DiscountPercentage),
		TotalAmount:        float(m.TotalAmount),
		FinalAmount:        float(m.FinalAmount),
		PaymentMethod:      str(m.PaymentMethod),
		OrderStatus:        str(m.OrderStatus),
		DeliveryType:       str(m.DeliveryType),
		StoreID:            str(m.StoreID),
		StoreLocation:      str(m.StoreLocation),
		SalespersonID:      str(m.SalespersonID),
		EmployeeName:       str(m.EmployeeName),
	}
	if m.Date.Valid {
		d := m.Date.Time.Format(DateLayout)
		r.Date = &d
	}
	return r
}

func NewSalesRecords(rows []model.SalesRecord) []SalesRecord {
	out := make([]SalesRecord, 0, len(rows))
	for i := range rows {
		out = append(out, NewSalesRecord(&rows[i]))
	}
	return out
}

func NewSalesSummary(m *model.SalesSummary) SalesSummary {
	amount, _ := m.TotalAmount.Float64()
	discount, _ := m.TotalDiscount.Float64()
	return SalesSummary{
		TotalUnits:    m.TotalUnits,
		TotalAmount:   amount,
		TotalDiscount: discount,
	}
}

func str(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func integer(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func float(v decimal.NullDecimal) *float64 {
	if !v.Valid {
		return nil
	}
	f, _ := v.Decimal.Float64()
	return &f
}
