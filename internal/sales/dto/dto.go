package dto

type SalesRecord struct {
	TransactionID int64 `json:"transactionId"`

	CustomerID     *string `json:"customerId"`
	CustomerName   *string `json:"customerName"`
	PhoneNumber    *string `json:"phoneNumber"`
	Gender         *string `json:"gender"`
	Age            *int64  `json:"age"`
	CustomerRegion *string `json:"customerRegion"`
	CustomerType   *string `json:"customerType"`

	ProductID       *string `json:"productId"`
	ProductName     *string `json:"productName"`
	Brand           *string `json:"brand"`
	ProductCategory *string `json:"productCategory"`
	Tags            *string `json:"tags"`

	Quantity           *int64   `json:"quantity"`
	PricePerUnit       *float64 `json:"pricePerUnit"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	TotalAmount        *float64 `json:"totalAmount"`
	FinalAmount        *float64 `json:"finalAmount"`
	Date               *string  `json:"date"` // YYYY-MM-DD
	PaymentMethod      *string  `json:"paymentMethod"`
	OrderStatus        *string  `json:"orderStatus"`
	DeliveryType       *string  `json:"deliveryType"`

	StoreID       *string `json:"storeId"`
	StoreLocation *string `json:"storeLocation"`
	SalespersonID *string `json:"salespersonId"`
	EmployeeName  *string `json:"employeeName"`
}

type PaginationMeta struct {
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalRecords    int64 `json:"totalRecords"`
	TotalPages      int64 `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type SalesPage struct {
	Data       []SalesRecord  `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type AgeRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type FilterOptions struct {
	CustomerRegions   []string `json:"customerRegions"`
	Genders           []string `json:"genders"`
	ProductCategories []string `json:"productCategories"`
	Tags              []string `json:"tags"`
	PaymentMethods    []string `json:"paymentMethods"`
	AgeRange          AgeRange `json:"ageRange"`
}

type SalesSummary struct {
	TotalUnits    int64   `json:"totalUnits"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalDiscount float64 `json:"totalDiscount"`
}
