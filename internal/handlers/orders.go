package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/faire"
)

// Root handles GET /.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to this fantastic app!"})
}

// Orders handles GET /orders: it triggers a full synchronization and
// returns the normalized orders. Any fetch, mapping or persistence error
// fails the whole call with a 500.
func (h *Handlers) Orders(c *gin.Context) {
	params := orderListParams(c)

	orders, err := h.sync.Synchronize(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("Sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Order handles GET /orders/:id: a live single-order sync.
func (h *Handlers) Order(c *gin.Context) {
	orderID := c.Param("id")

	order, err := h.sync.SyncOrder(c.Request.Context(), orderID)
	if err != nil {
		if faire.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found: " + orderID})
			return
		}
		h.logger.Error("Order sync failed", zap.String("order_id", orderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, order)
}

// orderListParams maps request query parameters onto the vendor call.
func orderListParams(c *gin.Context) faire.OrderListParams {
	params := faire.OrderListParams{
		UpdatedAtMin:   c.Query("updated_at_min"),
		CreatedAtMin:   c.Query("created_at_min"),
		ShipAfterMax:   c.Query("ship_after_max"),
		Cursor:         c.Query("cursor"),
		ExcludedStates: c.QueryArray("excluded_states"),
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			params.Limit = limit
		}
	}
	if pageStr := c.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			params.Page = page
		}
	}

	return params
}
