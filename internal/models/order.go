package models

import "time"

// OrderState is the lifecycle state reported by the vendor. Values are
// passed through as-is; the vendor may introduce new states at any time.
type OrderState string

const (
	OrderStateNew        OrderState = "NEW"
	OrderStateProcessing OrderState = "PROCESSING"
	OrderStatePreTransit OrderState = "PRE_TRANSIT"
	OrderStateInTransit  OrderState = "IN_TRANSIT"
	OrderStateDelivered  OrderState = "DELIVERED"
	OrderStateBackorder  OrderState = "BACKORDERED"
	OrderStateCanceled   OrderState = "CANCELED"
	OrderStateReturned   OrderState = "RETURNED"
)

// Cost is a monetary amount in minor units (cents). Amounts stay integers
// end to end; no float arithmetic touches money.
type Cost struct {
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
}

// Customer is the retail customer embedded in an order.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Address is the shipping address embedded in an order. It has no identity
// outside the order that owns it.
type Address struct {
	AddressID   string `json:"address_id"`
	Name        string `json:"name,omitempty"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// Discount is a promotion applied to an order or an order item.
type Discount struct {
	DiscountID           string `json:"discount_id,omitempty"`
	Code                 string `json:"code,omitempty"`
	DiscountType         string `json:"discount_type,omitempty"`
	IncludesFreeShipping bool   `json:"includes_free_shipping"`
	Amount               *Cost  `json:"discount_amount,omitempty"`
	Percentage           int    `json:"discount_percentage,omitempty"`
}

// Tax is one tax line inside the payout cost breakdown.
type Tax struct {
	Value           Cost   `json:"value"`
	TaxableItemType string `json:"taxable_item_type,omitempty"`
	TaxType         string `json:"tax_type"`
	Effect          string `json:"effect"`
}

// PayoutCosts is the vendor's fee and payout breakdown for an order.
type PayoutCosts struct {
	PayoutFeeBps           int   `json:"payout_fee_bps,omitempty"`
	CommissionBps          int   `json:"commission_bps,omitempty"`
	PayoutFee              *Cost `json:"payout_fee,omitempty"`
	Commission             *Cost `json:"commission,omitempty"`
	TotalPayout            *Cost `json:"total_payout,omitempty"`
	PayoutProtectionFee    *Cost `json:"payout_protection_fee,omitempty"`
	DamagedAndMissingItems *Cost `json:"damaged_and_missing_items,omitempty"`
	NetTax                 *Cost `json:"net_tax,omitempty"`
	ShippingSubsidy        *Cost `json:"shipping_subsidy,omitempty"`
	Taxes                  []Tax `json:"taxes,omitempty"`
}

// Order is the normalized order record. ProviderOrderID is the vendor's
// unique id and serves as the upsert key. Items and shipments are persisted
// independently and referenced here by id only.
type Order struct {
	ProviderOrderID    string       `json:"provider_order_id"`
	DisplayID          string       `json:"display_id"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	State              OrderState   `json:"state"`
	Address            *Address     `json:"address,omitempty"`
	Customer           Customer     `json:"customer"`
	ShipAfter          *time.Time   `json:"ship_after,omitempty"`
	PayoutCosts        *PayoutCosts `json:"payout_costs,omitempty"`
	PaymentInitiatedAt *time.Time   `json:"payment_initiated_at,omitempty"`
	ExpectedShipDate   *time.Time   `json:"expected_ship_date,omitempty"`
	ProcessingAt       *time.Time   `json:"processing_at,omitempty"`
	OriginalOrderID    string       `json:"original_order_id,omitempty"`
	RetailerID         string       `json:"retailer_id"`
	Source             string       `json:"source"`
	OrderItemIDs       []string     `json:"order_item_ids"`
	ShipmentIDs        []string     `json:"shipment_ids"`
	BrandDiscounts     []Discount   `json:"brand_discounts"`
}

// OrderItem is one line of an order, persisted as its own document keyed by
// the vendor's item id.
type OrderItem struct {
	OrderItemID    string     `json:"order_item_id"`
	OrderID        string     `json:"order_id"`
	State          OrderState `json:"state"`
	ProductID      string     `json:"product_id"`
	VariantID      string     `json:"variant_id,omitempty"`
	Quantity       int        `json:"quantity"`
	SKU            string     `json:"sku"`
	Price          Cost       `json:"price"`
	ProductName    string     `json:"product_name"`
	VariantName    string     `json:"variant_name,omitempty"`
	IncludesTester bool       `json:"includes_tester"`
	TesterPrice    *Cost      `json:"tester_price,omitempty"`
	Discounts      []Discount `json:"discounts"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Shipment is one shipment of an order, persisted as its own document keyed
// by the vendor's shipment id.
type Shipment struct {
	ShipmentID     string    `json:"shipment_id"`
	OrderID        string    `json:"order_id"`
	MakerCostCents int64     `json:"maker_cost_cents"`
	Carrier        string    `json:"carrier,omitempty"`
	TrackingCode   string    `json:"tracking_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
