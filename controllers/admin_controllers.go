package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

type AdminController struct {
	Terminal Terminal
	// Now is overridden in tests.
	Now func() time.Time
}

func NewAdminController(t Terminal) *AdminController {
	return &AdminController{Terminal: t, Now: time.Now}
}

// GetDashboard returns today's figures, the last seven days of sales and the
// best sellers.
func (ac *AdminController) GetDashboard(c *gin.Context) {
	d := engine.BuildDashboard(ac.Terminal.Snapshot(), ac.Now())
	utils.RespondJSON(c, http.StatusOK, "Dashboard retrieved", d)
}

// GetSalesHistory lists paid orders, newest first.
func (ac *AdminController) GetSalesHistory(c *gin.Context) {
	paid := engine.SalesHistory(ac.Terminal.Snapshot())
	history := make([]models.Order, 0, len(paid))
	for i := len(paid) - 1; i >= 0; i-- {
		history = append(history, paid[i])
	}
	utils.RespondJSON(c, http.StatusOK, "Sales history retrieved", history)
}

func (ac *AdminController) GetSettings(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Settings retrieved", ac.Terminal.Snapshot().Settings)
}

func (ac *AdminController) UpdateSettings(c *gin.Context) {
	var settings models.Settings
	if !bindJSON(c, &settings) {
		return
	}

	snap, ok := dispatch(c, ac.Terminal, engine.ReplaceSettings{Settings: settings}, "settings are unchanged")
	if !ok {
		return
	}
	utils.InfoLogger.Printf("Settings updated: tax=%g%% commission=%g%%", snap.Settings.TaxRate, snap.Settings.CommissionRate)
	utils.RespondJSON(c, http.StatusOK, "Settings updated", snap.Settings)
}
