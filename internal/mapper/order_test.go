package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatelabs/faire-sync/internal/faire"
	"github.com/yatelabs/faire-sync/internal/models"
)

func decodeOrder(t *testing.T, raw string) *faire.OrderPayload {
	t.Helper()
	var p faire.OrderPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

const fullOrderJSON = `{
	"id": "bo_123",
	"display_id": "ABC123",
	"created_at": "2023-06-01T10:00:00.000Z",
	"updated_at": "2023-06-02T11:30:00.000Z",
	"state": "PROCESSING",
	"retailer_id": "r_9",
	"source": "MARKETPLACE",
	"ship_after": "2023-06-05T00:00:00.000Z",
	"payment_initiated_at": "2023-06-01T10:05:00.000Z",
	"expected_ship_date": "2023-06-07T00:00:00.000Z",
	"processing_at": "2023-06-02T09:00:00.000Z",
	"original_order_id": "bo_100",
	"customer": {"first_name": "Ada", "last_name": "Lovelace"},
	"address": {
		"id": "addr_1",
		"name": "Ada Lovelace",
		"address1": "1 Analytical Way",
		"address2": "Suite 2",
		"postal_code": "94107",
		"city": "San Francisco",
		"state": "California",
		"state_code": "CA",
		"phone_number": "+1 555 0100",
		"country": "United States",
		"country_code": "US",
		"company_name": "Engines Ltd"
	},
	"payout_costs": {
		"payout_fee_bps": 300,
		"commission_bps": 1500,
		"payout_fee": {"amount_minor": 120, "currency": "USD"},
		"commission": {"amount_minor": 600, "currency": "USD"},
		"total_payout": {"amount_minor": 3280, "currency": "USD"},
		"net_tax": {"amount_minor": 40, "currency": "USD"},
		"shipping_subsidy": {"amount_minor": 0, "currency": "USD"},
		"taxes": [
			{"value": {"amount_minor": 40, "currency": "USD"}, "taxable_item_type": "ITEM", "tax_type": "VAT", "effect": "INCLUDED"}
		]
	},
	"items": [
		{
			"id": "oi_1", "order_id": "bo_123", "state": "PROCESSING",
			"product_id": "p_1", "variant_id": "v_1", "quantity": 2,
			"price": {"amount_minor": 1000, "currency": "USD"},
			"product_name": "Candle", "variant_name": "Large",
			"includes_tester": true,
			"tester_price": {"amount_minor": 100, "currency": "USD"},
			"discounts": [],
			"created_at": "2023-06-01T10:00:00.000Z",
			"updated_at": "2023-06-01T10:00:00.000Z"
		},
		{
			"id": "oi_2", "order_id": "bo_123", "state": "PROCESSING",
			"product_id": "p_2", "quantity": 1,
			"price": {"amount_minor": 2000, "currency": "USD"},
			"product_name": "Soap",
			"includes_tester": false,
			"discounts": [],
			"created_at": "2023-06-01T10:00:00.000Z",
			"updated_at": "2023-06-01T10:00:00.000Z"
		},
		{
			"id": "oi_3", "order_id": "bo_123", "state": "PROCESSING",
			"product_id": "p_3", "quantity": 4, "sku": "SKU-3",
			"price": {"amount_minor": 500, "currency": "USD"},
			"product_name": "Balm",
			"includes_tester": false,
			"discounts": [],
			"created_at": "2023-06-01T10:00:00.000Z",
			"updated_at": "2023-06-01T10:00:00.000Z"
		}
	],
	"shipments": [
		{
			"id": "s_1", "order_id": "bo_123", "maker_cost_cents": 795,
			"carrier": "UPS", "tracking_code": "1Z999",
			"created_at": "2023-06-03T08:00:00.000Z",
			"updated_at": "2023-06-03T08:00:00.000Z"
		},
		{
			"id": "s_2", "order_id": "bo_123", "maker_cost_cents": 450,
			"created_at": "2023-06-04T08:00:00.000Z",
			"updated_at": "2023-06-04T08:00:00.000Z"
		}
	],
	"brand_discounts": [
		{
			"id": "d_1", "code": "SUMMER10", "discount_type": "PERCENTAGE",
			"includes_free_shipping": false,
			"discount_amount": {"amount_minor": 350, "currency": "USD"},
			"discount_percentage": 10
		}
	]
}`

func TestMapOrder_AllItemsMapped(t *testing.T) {
	p := decodeOrder(t, fullOrderJSON)

	mapped, err := MapOrder(p)
	require.NoError(t, err)

	// Every element of items and shipments maps to its own record.
	assert.Len(t, mapped.Items, 3)
	assert.Len(t, mapped.Shipments, 2)
	assert.Equal(t, []string{"oi_1", "oi_2", "oi_3"}, mapped.Order.OrderItemIDs)
	assert.Equal(t, []string{"s_1", "s_2"}, mapped.Order.ShipmentIDs)
}

func TestMapOrder_Fields(t *testing.T) {
	p := decodeOrder(t, fullOrderJSON)

	mapped, err := MapOrder(p)
	require.NoError(t, err)
	order := mapped.Order

	assert.Equal(t, "bo_123", order.ProviderOrderID)
	assert.Equal(t, "ABC123", order.DisplayID)
	assert.Equal(t, models.OrderStateProcessing, order.State)
	assert.Equal(t, "r_9", order.RetailerID)
	assert.Equal(t, "MARKETPLACE", order.Source)
	assert.Equal(t, "bo_100", order.OriginalOrderID)
	assert.Equal(t, models.Customer{FirstName: "Ada", LastName: "Lovelace"}, order.Customer)

	require.NotNil(t, order.Address)
	assert.Equal(t, "addr_1", order.Address.AddressID)
	assert.Equal(t, "CA", order.Address.StateCode)

	require.NotNil(t, order.PayoutCosts)
	assert.Equal(t, 300, order.PayoutCosts.PayoutFeeBps)
	require.NotNil(t, order.PayoutCosts.TotalPayout)
	assert.Equal(t, int64(3280), order.PayoutCosts.TotalPayout.AmountMinor)
	require.Len(t, order.PayoutCosts.Taxes, 1)
	assert.Equal(t, "VAT", order.PayoutCosts.Taxes[0].TaxType)

	require.NotNil(t, order.PaymentInitiatedAt)
	assert.Equal(t, time.Date(2023, 6, 1, 10, 5, 0, 0, time.UTC), *order.PaymentInitiatedAt)

	item := mapped.Items[0]
	assert.Equal(t, models.Cost{AmountMinor: 1000, Currency: "USD"}, item.Price)
	assert.True(t, item.IncludesTester)
	require.NotNil(t, item.TesterPrice)
	assert.Equal(t, int64(100), item.TesterPrice.AmountMinor)

	// sku falls back to the item id when the vendor omits it.
	assert.Equal(t, "oi_1", mapped.Items[0].SKU)
	assert.Equal(t, "SKU-3", mapped.Items[2].SKU)

	shipment := mapped.Shipments[0]
	assert.Equal(t, int64(795), shipment.MakerCostCents)
	assert.Equal(t, "UPS", shipment.Carrier)
	assert.Equal(t, "1Z999", shipment.TrackingCode)
	assert.Empty(t, mapped.Shipments[1].Carrier)
}

func TestMapOrder_Idempotent(t *testing.T) {
	first, err := MapOrder(decodeOrder(t, fullOrderJSON))
	require.NoError(t, err)
	second, err := MapOrder(decodeOrder(t, fullOrderJSON))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMapOrder_MinimalPayload(t *testing.T) {
	raw := `{
		"id": "o1", "display_id": "D1",
		"created_at": "2023-01-01T00:00:00Z", "updated_at": "2023-01-01T00:00:00Z",
		"state": "new", "retailer_id": "r1", "source": "web",
		"items": [], "shipments": [], "brand_discounts": [],
		"address": null, "payout_costs": {},
		"customer": {"first_name": "A", "last_name": "B"}
	}`

	mapped, err := MapOrder(decodeOrder(t, raw))
	require.NoError(t, err)

	assert.Equal(t, "o1", mapped.Order.ProviderOrderID)
	assert.Nil(t, mapped.Order.Address)
	assert.Nil(t, mapped.Order.PaymentInitiatedAt)
	assert.Empty(t, mapped.Order.OrderItemIDs)
	assert.Empty(t, mapped.Order.ShipmentIDs)
	assert.Empty(t, mapped.Items)
	assert.Empty(t, mapped.Shipments)
}

func TestMapOrder_RequiredFields(t *testing.T) {
	base := map[string]any{
		"id": "o1", "display_id": "D1",
		"created_at": "2023-01-01T00:00:00Z", "updated_at": "2023-01-01T00:00:00Z",
		"state": "NEW", "retailer_id": "r1", "source": "web",
	}

	for _, field := range []string{"id", "display_id", "created_at", "updated_at", "state", "retailer_id", "source"} {
		t.Run(field, func(t *testing.T) {
			payload := make(map[string]any, len(base))
			for k, v := range base {
				payload[k] = v
			}
			delete(payload, field)

			raw, err := json.Marshal(payload)
			require.NoError(t, err)

			_, err = MapOrder(decodeOrder(t, string(raw)))
			var mapErr *MappingError
			require.ErrorAs(t, err, &mapErr)
			assert.Equal(t, field, mapErr.Field)
		})
	}
}

func TestMapOrder_OptionalDatesTolerateNull(t *testing.T) {
	raw := `{
		"id": "o1", "display_id": "D1",
		"created_at": "2023-01-01T00:00:00Z", "updated_at": "2023-01-01T00:00:00Z",
		"state": "NEW", "retailer_id": "r1", "source": "web",
		"payment_initiated_at": null, "expected_ship_date": null,
		"processing_at": null, "ship_after": null
	}`

	mapped, err := MapOrder(decodeOrder(t, raw))
	require.NoError(t, err)

	assert.Nil(t, mapped.Order.PaymentInitiatedAt)
	assert.Nil(t, mapped.Order.ExpectedShipDate)
	assert.Nil(t, mapped.Order.ProcessingAt)
	assert.Nil(t, mapped.Order.ShipAfter)
}

func TestMapOrder_TimestampsNormalizedToUTC(t *testing.T) {
	raw := `{
		"id": "o1", "display_id": "D1",
		"created_at": "2023-01-01T05:00:00+05:00",
		"updated_at": "20230101T120000.000Z",
		"state": "NEW", "retailer_id": "r1", "source": "web"
	}`

	mapped, err := MapOrder(decodeOrder(t, raw))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), mapped.Order.CreatedAt)
	assert.Equal(t, time.UTC, mapped.Order.CreatedAt.Location())
	assert.Equal(t, time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC), mapped.Order.UpdatedAt)
}

func TestMapDiscounts_CurrencyFromPayload(t *testing.T) {
	p := decodeOrder(t, fullOrderJSON)

	mapped, err := MapOrder(p)
	require.NoError(t, err)

	require.Len(t, mapped.Order.BrandDiscounts, 1)
	d := mapped.Order.BrandDiscounts[0]
	require.NotNil(t, d.Amount)
	assert.Equal(t, int64(350), d.Amount.AmountMinor)
	assert.Equal(t, "USD", d.Amount.Currency)
	assert.Equal(t, 10, d.Percentage)
}

func TestMapOrders_Batch(t *testing.T) {
	raw := `{"orders": [
		{"id": "o1", "display_id": "D1", "created_at": "2023-01-01T00:00:00Z",
		 "updated_at": "2023-01-01T00:00:00Z", "state": "NEW", "retailer_id": "r1", "source": "web"},
		{"id": "o2", "display_id": "D2", "created_at": "2023-01-02T00:00:00Z",
		 "updated_at": "2023-01-02T00:00:00Z", "state": "NEW", "retailer_id": "r1", "source": "web"}
	]}`

	var payload faire.OrdersPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	mapped, err := MapOrders(&payload)
	require.NoError(t, err)
	require.Len(t, mapped, 2)
	assert.Equal(t, "o1", mapped[0].Order.ProviderOrderID)
	assert.Equal(t, "o2", mapped[1].Order.ProviderOrderID)
}

func TestMapOrders_OneBadOrderAbortsBatch(t *testing.T) {
	raw := `{"orders": [
		{"id": "o1", "display_id": "D1", "created_at": "2023-01-01T00:00:00Z",
		 "updated_at": "2023-01-01T00:00:00Z", "state": "NEW", "retailer_id": "r1", "source": "web"},
		{"id": "o2", "display_id": "D2"}
	]}`

	var payload faire.OrdersPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	_, err := MapOrders(&payload)
	var mapErr *MappingError
	require.ErrorAs(t, err, &mapErr)
}
