package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/services"
	"github.com/yeremiapane/smart-pos/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Terminal is the part of services.Terminal the handlers use.
type Terminal interface {
	Dispatch(in engine.Intent) (models.Snapshot, bool, error)
	Snapshot() models.Snapshot
	View(fn func(models.Snapshot))
	CurrentUser() *models.User
	Engine() *engine.Engine
}

var _ Terminal = (*services.Terminal)(nil)

// dispatch applies in and answers the request itself when the intent fails
// or has no effect; rejected explains the latter to the client.
func dispatch(c *gin.Context, t Terminal, in engine.Intent, rejected string) (models.Snapshot, bool) {
	_, span := utils.Tracer().Start(c.Request.Context(), "intent "+string(in.Kind()))
	defer span.End()

	snap, applied, err := t.Dispatch(in)
	span.SetAttributes(
		attribute.String("pos.intent", string(in.Kind())),
		attribute.Bool("pos.applied", applied),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, services.ErrTerminalClosed) {
			utils.RespondError(c, http.StatusServiceUnavailable, err)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return snap, false
	}
	if !applied {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New(rejected))
		return snap, false
	}
	return snap, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return false
	}
	return true
}
