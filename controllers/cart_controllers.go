package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

type CartController struct {
	Terminal Terminal
}

func NewCartController(t Terminal) *CartController {
	return &CartController{Terminal: t}
}

type cartView struct {
	Lines []models.OrderLine `json:"lines"`
	Quote engine.Quote       `json:"quote"`
}

func viewCart(s models.Snapshot) cartView {
	lines := s.Cart
	if lines == nil {
		lines = []models.OrderLine{}
	}
	return cartView{Lines: lines, Quote: engine.PriceLines(lines, s.Settings.TaxRate)}
}

func (cc *CartController) GetCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Cart", viewCart(cc.Terminal.Snapshot()))
}

func (cc *CartController) AddItem(c *gin.Context) {
	var req engine.AddToCart
	if !bindJSON(c, &req) {
		return
	}
	snap, ok := dispatch(c, cc.Terminal, req, "product unknown, out of stock or already at stock in the cart")
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", viewCart(snap))
}

func (cc *CartController) SetQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !bindJSON(c, &req) {
		return
	}
	in := engine.SetQuantity{ProductID: c.Param("product_id"), Quantity: req.Quantity}
	snap, ok := dispatch(c, cc.Terminal, in, "product not in the cart or quantity unchanged")
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Quantity updated", viewCart(snap))
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	snap, ok := dispatch(c, cc.Terminal, engine.RemoveFromCart{ProductID: c.Param("product_id")}, "product not in the cart")
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", viewCart(snap))
}

func (cc *CartController) ClearCart(c *gin.Context) {
	snap, ok := dispatch(c, cc.Terminal, engine.ClearCart{}, "cart is already empty")
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", viewCart(snap))
}
