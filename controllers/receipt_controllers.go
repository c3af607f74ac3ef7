package controllers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/utils"
)

// ReceiptRenderer writes a printable receipt document.
type ReceiptRenderer interface {
	Render(w io.Writer, r engine.Receipt) error
}

type ReceiptController struct {
	Terminal Terminal
	PDF      ReceiptRenderer
}

func NewReceiptController(t Terminal, pdf ReceiptRenderer) *ReceiptController {
	return &ReceiptController{Terminal: t, PDF: pdf}
}

func (rc *ReceiptController) receipt(c *gin.Context) (engine.Receipt, bool) {
	snap := rc.Terminal.Snapshot()
	o, ok := snap.FindOrder(c.Param("order_id"))
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errOrderNotFound)
		return engine.Receipt{}, false
	}
	return engine.BuildReceipt(o, snap.Settings), true
}

// GetReceipt returns the receipt of an order using the current store
// settings.
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	r, ok := rc.receipt(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Receipt retrieved", r)
}

func (rc *ReceiptController) GetReceiptPDF(c *gin.Context) {
	r, ok := rc.receipt(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := rc.PDF.Render(&buf, r); err != nil {
		utils.ErrorLogger.Errorf("Receipt %s: %v", r.OrderID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="receipt-`+r.OrderID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
