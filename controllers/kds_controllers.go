package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/smart-pos/kds"
	"github.com/yeremiapane/smart-pos/middlewares"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type KDSController struct {
	Terminal Terminal
	Hub      *kds.Hub
}

func NewKDSController(t Terminal, hub *kds.Hub) *KDSController {
	return &KDSController{Terminal: t, Hub: hub}
}

// Connect upgrades to a websocket that receives the views the signed-in
// role may see, now and after every applied intent.
func (kc *KDSController) Connect(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	kc.Hub.Serve(ws, user.Role, kc.Terminal.View)
}
