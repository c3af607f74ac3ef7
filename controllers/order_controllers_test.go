package controllers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/kds"
	"github.com/yeremiapane/smart-pos/models"
)

type cartResponse struct {
	Lines []models.OrderLine `json:"lines"`
	Quote engine.Quote       `json:"quote"`
}

type checkoutResponse struct {
	Order   models.Order   `json:"order"`
	Receipt engine.Receipt `json:"receipt"`
}

func fillCart(t *testing.T, router *gin.Engine, productID string, times int) {
	t.Helper()
	for i := 0; i < times; i++ {
		w := doRequest(t, router, http.MethodPost, "/cart/items", map[string]string{"product_id": productID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
}

func TestCartEndpoints(t *testing.T) {
	term := setupTerminal(t)
	router := setupRouterForTest(term)
	signIn(t, term, "cashier1")

	var cart cartResponse
	decodeData(t, doRequest(t, router, http.MethodGet, "/cart", nil), &cart)
	assert.NotNil(t, cart.Lines)
	assert.Empty(t, cart.Lines)

	fillCart(t, router, "p1", 2)
	w := doRequest(t, router, http.MethodPost, "/cart/items", map[string]string{"product_id": "p2"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &cart)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 3, cart.Quote.ItemCount)

	w = doRequest(t, router, http.MethodPatch, "/cart/items/p1", map[string]int{"quantity": 4})
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &cart)
	assert.Equal(t, 4, cart.Lines[0].Quantity)

	w = doRequest(t, router, http.MethodPatch, "/cart/items/p1", map[string]int{"quantity": 4})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/cart/items/p2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &cart)
	require.Len(t, cart.Lines, 1)

	w = doRequest(t, router, http.MethodDelete, "/cart/items/p2", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPost, "/cart/items", map[string]string{"product_id": "missing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, term.Snapshot().Cart)

	w = doRequest(t, router, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckoutCash(t *testing.T) {
	term := setupTerminal(t)
	router := setupRouterForTest(term)
	signIn(t, term, "cashier1")
	fillCart(t, router, "p1", 3)

	w := doRequest(t, router, http.MethodPost, "/checkout", map[string]interface{}{
		"payment_method": "cash", "received_amount": 150,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPost, "/checkout", map[string]interface{}{
		"payment_method": "cash", "received_amount": 200,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp checkoutResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "ORD-1", resp.Order.ID)
	assert.Equal(t, models.OrderStatusPaid, resp.Order.Status)
	assert.Equal(t, "user2", resp.Order.CashierID)
	assert.InDelta(t, 192.6, resp.Order.Total, 1e-9)
	assert.InDelta(t, 7.4, resp.Receipt.Change, 1e-9)
	assert.Equal(t, "เงินสด", resp.Receipt.PaymentMethod)

	p, _ := term.Snapshot().FindProduct("p1")
	assert.Equal(t, 97, p.Stock)
	// the cart stays until the client clears it
	assert.Len(t, term.Snapshot().Cart, 1)
}

func TestCheckoutRejects(t *testing.T) {
	term := setupTerminal(t)
	router := setupRouterForTest(term)
	signIn(t, term, "cashier1")

	w := doRequest(t, router, http.MethodPost, "/checkout", map[string]string{"payment_method": "qr_code"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "empty cart")

	fillCart(t, router, "p1", 1)
	w = doRequest(t, router, http.MethodPost, "/checkout", map[string]string{"payment_method": "bitcoin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPost, "/checkout", map[string]string{"payment_method": "cash"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "cash without amount")
	assert.Empty(t, term.Snapshot().Orders)
}

func TestOrderStatusFlow(t *testing.T) {
	term := setupTerminal(t)
	router := setupRouterForTest(term)
	signIn(t, term, "cashier1")
	fillCart(t, router, "p1", 3)
	w := doRequest(t, router, http.MethodPost, "/checkout", map[string]string{"payment_method": "credit_card"})
	require.Equal(t, http.StatusCreated, w.Code)

	signIn(t, term, "kitchen1")

	var tickets []kds.Ticket
	decodeData(t, doRequest(t, router, http.MethodGet, "/kitchen/display", nil), &tickets)
	require.Len(t, tickets, 1)
	assert.Equal(t, "ORD-1", tickets[0].Order.ID)
	require.Len(t, tickets[0].Actions, 1)
	assert.Equal(t, models.OrderStatusPreparing, tickets[0].Actions[0].Status)

	w = doRequest(t, router, http.MethodPatch, "/orders/ORD-1/status", map[string]string{"status": "preparing"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var o models.Order
	decodeData(t, w, &o)
	assert.Equal(t, models.OrderStatusPreparing, o.Status)

	w = doRequest(t, router, http.MethodPatch, "/orders/ORD-1/status", map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPatch, "/orders/ORD-1/status", map[string]string{"status": "burnt"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodPatch, "/orders/ORD-9/status", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPatch, "/orders/ORD-1/status", map[string]string{"status": "ready"})
	require.Equal(t, http.StatusOK, w.Code)

	decodeData(t, doRequest(t, router, http.MethodGet, "/kitchen/display", nil), &tickets)
	assert.Empty(t, tickets)
	decodeData(t, doRequest(t, router, http.MethodGet, "/serving/display", nil), &tickets)
	require.Len(t, tickets, 1)
	assert.Equal(t, models.OrderStatusServed, tickets[0].Actions[0].Status)
}

func TestOrderQueries(t *testing.T) {
	term := setupTerminal(t)
	router := setupRouterForTest(term)
	signIn(t, term, "cashier1")
	fillCart(t, router, "p2", 1)
	require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/checkout", map[string]string{"payment_method": "qr_code"}).Code)

	var orders []models.Order
	decodeData(t, doRequest(t, router, http.MethodGet, "/orders", nil), &orders)
	assert.Len(t, orders, 1)
	decodeData(t, doRequest(t, router, http.MethodGet, "/orders?status=ready", nil), &orders)
	assert.Empty(t, orders)

	w := doRequest(t, router, http.MethodGet, "/orders/ORD-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, router, http.MethodGet, "/orders/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReceiptEndpoints(t *testing.T) {
	term := setupTerminal(t)
	router := setupRouterForTest(term)
	signIn(t, term, "cashier1")
	fillCart(t, router, "p1", 1)
	require.Equal(t, http.StatusCreated, doRequest(t, router, http.MethodPost, "/checkout", map[string]string{"payment_method": "qr_code"}).Code)

	var r engine.Receipt
	w := doRequest(t, router, http.MethodGet, "/orders/ORD-1/receipt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &r)
	assert.Equal(t, "ORD-1", r.OrderID)
	assert.False(t, r.Cash)

	w = doRequest(t, router, http.MethodGet, "/orders/ORD-1/receipt/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = doRequest(t, router, http.MethodGet, "/orders/ORD-2/receipt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
