package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/kds"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

var (
	errOrderNotFound   = errors.New("order not found")
	errProductNotFound = errors.New("product not found")
)

type OrderController struct {
	Terminal Terminal
}

func NewOrderController(t Terminal) *OrderController {
	return &OrderController{Terminal: t}
}

// Checkout turns the cart into an order. The cart is kept until the client
// clears it after showing the receipt.
func (oc *OrderController) Checkout(c *gin.Context) {
	var req engine.Checkout
	if !bindJSON(c, &req) {
		return
	}
	if !req.PaymentMethod.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown payment method"))
		return
	}

	snap, ok := dispatch(c, oc.Terminal, req, "cart is empty, received cash does not cover the total, or stock ran out")
	if !ok {
		return
	}
	order := snap.Orders[len(snap.Orders)-1]
	utils.InfoLogger.Printf("Order %s checked out: total=%.2f method=%s", order.ID, order.Total, order.PaymentMethod)
	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":   order,
		"receipt": engine.BuildReceipt(order, snap.Settings),
	})
}

// GetAllOrders returns the whole ledger, or only ?status= orders.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders := oc.Terminal.Snapshot().Orders
	if status := c.Query("status"); status != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	utils.RespondJSON(c, http.StatusOK, "Orders retrieved", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	o, ok := oc.Terminal.Snapshot().FindOrder(c.Param("order_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order retrieved", o)
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	in := engine.AdvanceOrderStatus{OrderID: c.Param("order_id"), Status: models.OrderStatus(req.Status)}
	if !in.Status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown order status"))
		return
	}
	if _, found := oc.Terminal.Snapshot().FindOrder(in.OrderID); !found {
		utils.RespondError(c, http.StatusNotFound, errOrderNotFound)
		return
	}

	snap, ok := dispatch(c, oc.Terminal, in, "order already has this status or the change is not allowed")
	if !ok {
		return
	}
	o, _ := snap.FindOrder(in.OrderID)
	utils.InfoLogger.Printf("Order %s is now %s", o.ID, o.Status)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", o)
}

func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Kitchen display", kds.KitchenTickets(oc.Terminal.Snapshot()))
}

func (oc *OrderController) GetServingDisplay(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Serving display", kds.ServingTickets(oc.Terminal.Snapshot()))
}
