package faire

import (
	"net/url"
	"strconv"
)

// OrderListParams are the optional query parameters accepted by the
// vendor's GET /orders endpoint. Zero values are omitted from the query.
type OrderListParams struct {
	Limit          int
	Page           int
	UpdatedAtMin   string
	CreatedAtMin   string
	ExcludedStates []string
	ShipAfterMax   string
	Cursor         string
}

// Values encodes the parameters as a URL query.
func (p OrderListParams) Values() url.Values {
	values := url.Values{}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.UpdatedAtMin != "" {
		values.Set("updated_at_min", p.UpdatedAtMin)
	}
	if p.CreatedAtMin != "" {
		values.Set("created_at_min", p.CreatedAtMin)
	}
	for _, state := range p.ExcludedStates {
		values.Add("excluded_states", state)
	}
	if p.ShipAfterMax != "" {
		values.Set("ship_after_max", p.ShipAfterMax)
	}
	if p.Cursor != "" {
		values.Set("cursor", p.Cursor)
	}

	return values
}
