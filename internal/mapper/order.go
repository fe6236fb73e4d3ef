// Package mapper converts vendor order payloads into normalized records.
// Mapping is pure: no I/O, no side effects, same input same output.
package mapper

import (
	"fmt"
	"time"

	"github.com/yatelabs/faire-sync/internal/faire"
	"github.com/yatelabs/faire-sync/internal/models"
)

// MappingError reports a required field missing from a vendor payload.
// A single MappingError aborts the whole batch.
type MappingError struct {
	Field string
}

func (e *MappingError) Error() string {
	return "mapper: required field missing: " + e.Field
}

// Mapped is one order together with its independently persisted children.
// The order references the children by id only.
type Mapped struct {
	Order     models.Order
	Items     []models.OrderItem
	Shipments []models.Shipment
}

// timeLayouts are the timestamp shapes the vendor has been observed to send.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"20060102T150405.000Z",
	"20060102T150405Z",
	"2006-01-02 15:04:05",
}

// MapOrders maps every order in a list payload. Any mapping failure aborts
// the batch.
func MapOrders(payload *faire.OrdersPayload) ([]Mapped, error) {
	mapped := make([]Mapped, 0, len(payload.Orders))
	for i := range payload.Orders {
		m, err := MapOrder(&payload.Orders[i])
		if err != nil {
			return nil, err
		}
		mapped = append(mapped, *m)
	}
	return mapped, nil
}

// MapOrder maps one vendor order into a normalized Order plus its child
// records. Absence of a required field is a *MappingError.
func MapOrder(p *faire.OrderPayload) (*Mapped, error) {
	if err := checkRequired(p); err != nil {
		return nil, err
	}

	createdAt, err := parseTime(p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapper: order %s: created_at: %w", p.ID, err)
	}
	updatedAt, err := parseTime(p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("mapper: order %s: updated_at: %w", p.ID, err)
	}

	order := models.Order{
		ProviderOrderID: p.ID,
		DisplayID:       p.DisplayID,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		State:           models.OrderState(p.State),
		RetailerID:      p.RetailerID,
		Source:          p.Source,
		OriginalOrderID: stringValue(p.OriginalOrderID),
		Address:         mapAddress(p.Address),
		PayoutCosts:     mapPayoutCosts(p.PayoutCosts),
		BrandDiscounts:  mapDiscounts(p.BrandDiscounts),
		OrderItemIDs:    make([]string, 0, len(p.Items)),
		ShipmentIDs:     make([]string, 0, len(p.Shipments)),
	}

	if p.Customer != nil {
		order.Customer = models.Customer{
			FirstName: p.Customer.FirstName,
			LastName:  p.Customer.LastName,
		}
	}

	// Optional timestamps: a missing value maps to nil, never an error.
	if order.ShipAfter, err = parseOptionalTime(p.ShipAfter); err != nil {
		return nil, fmt.Errorf("mapper: order %s: ship_after: %w", p.ID, err)
	}
	if order.PaymentInitiatedAt, err = parseOptionalTime(p.PaymentInitiatedAt); err != nil {
		return nil, fmt.Errorf("mapper: order %s: payment_initiated_at: %w", p.ID, err)
	}
	if order.ExpectedShipDate, err = parseOptionalTime(p.ExpectedShipDate); err != nil {
		return nil, fmt.Errorf("mapper: order %s: expected_ship_date: %w", p.ID, err)
	}
	if order.ProcessingAt, err = parseOptionalTime(p.ProcessingAt); err != nil {
		return nil, fmt.Errorf("mapper: order %s: processing_at: %w", p.ID, err)
	}

	items, err := mapItems(p.Items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		order.OrderItemIDs = append(order.OrderItemIDs, item.OrderItemID)
	}

	shipments, err := mapShipments(p.Shipments)
	if err != nil {
		return nil, err
	}
	for _, shipment := range shipments {
		order.ShipmentIDs = append(order.ShipmentIDs, shipment.ShipmentID)
	}

	return &Mapped{Order: order, Items: items, Shipments: shipments}, nil
}

func checkRequired(p *faire.OrderPayload) error {
	required := []struct {
		field string
		value string
	}{
		{"id", p.ID},
		{"display_id", p.DisplayID},
		{"created_at", p.CreatedAt},
		{"updated_at", p.UpdatedAt},
		{"state", p.State},
		{"retailer_id", p.RetailerID},
		{"source", p.Source},
	}
	for _, r := range required {
		if r.value == "" {
			return &MappingError{Field: r.field}
		}
	}
	return nil
}

func mapItems(items []faire.ItemPayload) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	for i := range items {
		p := &items[i]
		if p.ID == "" {
			return nil, &MappingError{Field: "items.id"}
		}

		createdAt, err := parseTime(p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("mapper: item %s: created_at: %w", p.ID, err)
		}
		updatedAt, err := parseTime(p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("mapper: item %s: updated_at: %w", p.ID, err)
		}

		item := models.OrderItem{
			OrderItemID:    p.ID,
			OrderID:        p.OrderID,
			State:          models.OrderState(p.State),
			ProductID:      p.ProductID,
			VariantID:      stringValue(p.VariantID),
			Quantity:       p.Quantity,
			SKU:            stringValue(p.SKU),
			ProductName:    p.ProductName,
			VariantName:    stringValue(p.VariantName),
			IncludesTester: p.IncludesTester,
			TesterPrice:    mapCostPtr(p.TesterPrice),
			Discounts:      mapDiscounts(p.Discounts),
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
		}
		// The vendor does not always populate sku; the item id is the
		// stable fallback key.
		if item.SKU == "" {
			item.SKU = p.ID
		}
		if p.Price != nil {
			item.Price = mapCost(*p.Price)
		}

		out = append(out, item)
	}
	return out, nil
}

func mapShipments(shipments []faire.ShipmentPayload) ([]models.Shipment, error) {
	out := make([]models.Shipment, 0, len(shipments))
	for i := range shipments {
		p := &shipments[i]
		if p.ID == "" {
			return nil, &MappingError{Field: "shipments.id"}
		}

		createdAt, err := parseTime(p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("mapper: shipment %s: created_at: %w", p.ID, err)
		}
		updatedAt, err := parseTime(p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("mapper: shipment %s: updated_at: %w", p.ID, err)
		}

		out = append(out, models.Shipment{
			ShipmentID:     p.ID,
			OrderID:        p.OrderID,
			MakerCostCents: p.MakerCostCents,
			Carrier:        stringValue(p.Carrier),
			TrackingCode:   stringValue(p.TrackingCode),
			CreatedAt:      createdAt,
			UpdatedAt:      updatedAt,
		})
	}
	return out, nil
}

func mapDiscounts(discounts []faire.DiscountPayload) []models.Discount {
	out := make([]models.Discount, 0, len(discounts))
	for _, p := range discounts {
		out = append(out, models.Discount{
			DiscountID:           p.ID,
			Code:                 p.Code,
			DiscountType:         stringValue(p.DiscountType),
			IncludesFreeShipping: p.IncludesFreeShipping,
			Amount:               mapCostPtr(p.DiscountAmount),
			Percentage:           p.DiscountPercentage,
		})
	}
	return out
}

func mapAddress(p *faire.AddressPayload) *models.Address {
	if p == nil {
		return nil
	}
	return &models.Address{
		AddressID:   p.ID,
		Name:        stringValue(p.Name),
		Address1:    p.Address1,
		Address2:    stringValue(p.Address2),
		PostalCode:  p.PostalCode,
		City:        p.City,
		State:       stringValue(p.State),
		StateCode:   stringValue(p.StateCode),
		PhoneNumber: p.PhoneNumber,
		Country:     p.Country,
		CountryCode: stringValue(p.CountryCode),
		CompanyName: stringValue(p.CompanyName),
	}
}

func mapPayoutCosts(p *faire.PayoutCostsPayload) *models.PayoutCosts {
	if p == nil {
		return nil
	}
	out := &models.PayoutCosts{
		PayoutFeeBps:           p.PayoutFeeBps,
		CommissionBps:          p.CommissionBps,
		PayoutFee:              mapCostPtr(p.PayoutFee),
		Commission:             mapCostPtr(p.Commission),
		TotalPayout:            mapCostPtr(p.TotalPayout),
		PayoutProtectionFee:    mapCostPtr(p.PayoutProtectionFee),
		DamagedAndMissingItems: mapCostPtr(p.DamagedAndMissingItems),
		NetTax:                 mapCostPtr(p.NetTax),
		ShippingSubsidy:        mapCostPtr(p.ShippingSubsidy),
	}
	for _, tax := range p.Taxes {
		out.Taxes = append(out.Taxes, models.Tax{
			Value:           mapCost(tax.Value),
			TaxableItemType: tax.TaxableItemType,
			TaxType:         tax.TaxType,
			Effect:          tax.Effect,
		})
	}
	return out
}

func mapCost(p faire.CostPayload) models.Cost {
	return models.Cost{AmountMinor: p.AmountMinor, Currency: p.Currency}
}

func mapCostPtr(p *faire.CostPayload) *models.Cost {
	if p == nil {
		return nil
	}
	c := mapCost(*p)
	return &c
}

// parseTime parses a vendor timestamp and normalizes it to UTC.
func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// parseOptionalTime tolerates nil and empty input, returning a nil
// timestamp instead of an error.
func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
