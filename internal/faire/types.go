package faire

// Wire representation of the Faire external API v2 payloads. Decoding into
// these types is the schema step: everything downstream works with typed
// fields instead of raw JSON maps. Optional scalar fields are pointers so a
// missing value is distinguishable from a zero value.

// OrdersPayload is the body of GET /orders.
type OrdersPayload struct {
	Page   int            `json:"page,omitempty"`
	Limit  int            `json:"limit,omitempty"`
	Cursor string         `json:"cursor,omitempty"`
	Orders []OrderPayload `json:"orders"`
}

// OrderPayload is one order object as the vendor sends it.
type OrderPayload struct {
	ID                 string              `json:"id"`
	DisplayID          string              `json:"display_id"`
	CreatedAt          string              `json:"created_at"`
	UpdatedAt          string              `json:"updated_at"`
	State              string              `json:"state"`
	RetailerID         string              `json:"retailer_id"`
	Source             string              `json:"source"`
	ShipAfter          *string             `json:"ship_after"`
	PaymentInitiatedAt *string             `json:"payment_initiated_at"`
	ExpectedShipDate   *string             `json:"expected_ship_date"`
	ProcessingAt       *string             `json:"processing_at"`
	OriginalOrderID    *string             `json:"original_order_id"`
	Customer           *CustomerPayload    `json:"customer"`
	Address            *AddressPayload     `json:"address"`
	PayoutCosts        *PayoutCostsPayload `json:"payout_costs"`
	Items              []ItemPayload       `json:"items"`
	Shipments          []ShipmentPayload   `json:"shipments"`
	BrandDiscounts     []DiscountPayload   `json:"brand_discounts"`
}

type CustomerPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AddressPayload struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Address1    string  `json:"address1"`
	Address2    *string `json:"address2"`
	PostalCode  string  `json:"postal_code"`
	City        string  `json:"city"`
	State       *string `json:"state"`
	StateCode   *string `json:"state_code"`
	PhoneNumber string  `json:"phone_number"`
	Country     string  `json:"country"`
	CountryCode *string `json:"country_code"`
	CompanyName *string `json:"company_name"`
}

type CostPayload struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

type ItemPayload struct {
	ID             string            `json:"id"`
	OrderID        string            `json:"order_id"`
	State          string            `json:"state"`
	ProductID      string            `json:"product_id"`
	VariantID      *string           `json:"variant_id"`
	Quantity       int               `json:"quantity"`
	SKU            *string           `json:"sku"`
	Price          *CostPayload      `json:"price"`
	ProductName    string            `json:"product_name"`
	VariantName    *string           `json:"variant_name"`
	IncludesTester bool              `json:"includes_tester"`
	TesterPrice    *CostPayload      `json:"tester_price"`
	Discounts      []DiscountPayload `json:"discounts"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

type ShipmentPayload struct {
	ID             string  `json:"id"`
	OrderID        string  `json:"order_id"`
	MakerCostCents int64   `json:"maker_cost_cents"`
	Carrier        *string `json:"carrier"`
	TrackingCode   *string `json:"tracking_code"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type DiscountPayload struct {
	ID                   string       `json:"id"`
	Code                 string       `json:"code"`
	DiscountType         *string      `json:"discount_type"`
	IncludesFreeShipping bool         `json:"includes_free_shipping"`
	DiscountAmount       *CostPayload `json:"discount_amount"`
	DiscountPercentage   int          `json:"discount_percentage"`
}

type TaxPayload struct {
	Value           CostPayload `json:"value"`
	TaxableItemType string      `json:"taxable_item_type"`
	TaxType         string      `json:"tax_type"`
	Effect          string      `json:"effect"`
}

type PayoutCostsPayload struct {
	PayoutFeeBps           int          `json:"payout_fee_bps"`
	CommissionBps          int          `json:"commission_bps"`
	PayoutFee              *CostPayload `json:"payout_fee"`
	Commission             *CostPayload `json:"commission"`
	TotalPayout            *CostPayload `json:"total_payout"`
	PayoutProtectionFee    *CostPayload `json:"payout_protection_fee"`
	DamagedAndMissingItems *CostPayload `json:"damaged_and_missing_items"`
	NetTax                 *CostPayload `json:"net_tax"`
	ShippingSubsidy        *CostPayload `json:"shipping_subsidy"`
	Taxes                  []TaxPayload `json:"taxes"`
}
