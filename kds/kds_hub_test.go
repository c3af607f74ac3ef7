package kds

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/smart-pos/database"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/services"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

func fixedView(snap models.Snapshot) ViewFunc {
	return func(fn func(models.Snapshot)) { fn(snap) }
}

func startHub(t *testing.T, hub *Hub, snap models.Snapshot) *httptest.Server {
	t.Helper()
	return startHubWithView(t, hub, fixedView(snap))
}

func startHubWithView(t *testing.T, hub *Hub, view ViewFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, models.UserRole(r.URL.Query().Get("role")), view)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, role models.UserRole) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?role=" + string(role)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func snapshotWithOrders() models.Snapshot {
	s := engine.SeedSnapshot()
	s.Orders = []models.Order{
		{ID: "ORD-1", Status: models.OrderStatusPaid, TotalPrepTime: 5, CreatedAt: time.Now()},
		{ID: "ORD-2", Status: models.OrderStatusReady, TotalPrepTime: 5, CreatedAt: time.Now()},
	}
	return s
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHubSendsRoleViews(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := startHub(t, hub, snapshotWithOrders())

	kitchen := dial(t, srv, models.RoleKitchen)
	msg := readMessage(t, kitchen)
	assert.Equal(t, EventKitchenUpdate, msg.Event)

	server := dial(t, srv, models.RoleServer)
	msg = readMessage(t, server)
	assert.Equal(t, EventServingUpdate, msg.Event)

	waitForClients(t, hub, 2)

	next := snapshotWithOrders()
	next.Orders[0].Status = models.OrderStatusReady
	hub.Publish(next, engine.KindAdvanceOrderStatus)

	msg = readMessage(t, server)
	assert.Equal(t, EventServingUpdate, msg.Event)
	assert.Equal(t, engine.KindAdvanceOrderStatus, msg.Intent)
	tickets, ok := msg.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, tickets, 2)

	msg = readMessage(t, kitchen)
	assert.Equal(t, EventKitchenUpdate, msg.Event)
	tickets, ok = msg.Data.([]interface{})
	require.True(t, ok)
	assert.Empty(t, tickets)
}

func TestHubUnregistersClosedScreens(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := startHub(t, hub, engine.SeedSnapshot())

	conn := dial(t, srv, models.RoleCashier)
	assert.Equal(t, EventCatalogUpdate, readMessage(t, conn).Event)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func kitchenTicketCount(t *testing.T, msg Message) int {
	t.Helper()
	require.Equal(t, EventKitchenUpdate, msg.Event)
	tickets, ok := msg.Data.([]interface{})
	require.True(t, ok)
	return len(tickets)
}

func TestScreenJoiningDuringCheckoutsSeesEveryOrder(t *testing.T) {
	term := services.NewTerminal(engine.New(engine.WithIDSource(engine.NewSequenceSource())),
		database.NewMemorySnapshotStore(), engine.SeedSnapshot())
	defer term.Close()
	hub := NewHub()
	defer hub.Close()
	term.Subscribe(hub.Publish)

	for _, in := range []engine.Intent{
		engine.Authenticate{Username: "cashier1", Password: "123"},
		engine.AddToCart{ProductID: "p1"},
	} {
		_, applied, err := term.Dispatch(in)
		require.NoError(t, err)
		require.True(t, applied)
	}
	// runs on handler and worker goroutines, so outcomes are checked through
	// the ledger afterwards
	checkout := func() {
		term.Dispatch(engine.Checkout{PaymentMethod: models.PaymentMethodQRCode})
	}

	t.Run("order placed just before the view is taken", func(t *testing.T) {
		srv := startHubWithView(t, hub, func(fn func(models.Snapshot)) {
			checkout()
			term.View(fn)
		})
		conn := dial(t, srv, models.RoleKitchen)
		assert.Equal(t, 1, kitchenTicketCount(t, readMessage(t, conn)))
		require.Len(t, term.Snapshot().Orders, 1)
	})

	t.Run("screens joining while orders stream in", func(t *testing.T) {
		const screens, orders = 5, 10
		srv := startHubWithView(t, hub, term.View)
		before := len(term.Snapshot().Orders)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < orders; i++ {
				checkout()
			}
		}()
		conns := make([]*websocket.Conn, screens)
		for i := range conns {
			conns[i] = dial(t, srv, models.RoleKitchen)
		}
		wg.Wait()

		want := before + orders
		require.Len(t, term.Snapshot().Orders, want)
		for _, conn := range conns {
			got := 0
			for got < want {
				got = kitchenTicketCount(t, readMessage(t, conn))
			}
			assert.Equal(t, want, got)
		}
	})
}

func TestMessagesPerRole(t *testing.T) {
	hub := NewHub()
	events := func(role models.UserRole) []string {
		var out []string
		for _, m := range hub.Messages(role, snapshotWithOrders(), "") {
			out = append(out, m.Event)
		}
		return out
	}

	assert.Equal(t, []string{EventKitchenUpdate, EventServingUpdate, EventDashboardUpdate, EventCatalogUpdate}, events(models.RoleAdmin))
	assert.Equal(t, []string{EventCatalogUpdate}, events(models.RoleCashier))
	assert.Equal(t, []string{EventKitchenUpdate}, events(models.RoleKitchen))
	assert.Equal(t, []string{EventServingUpdate}, events(models.RoleServer))
	assert.Empty(t, events("Guest"))
}

func TestTickets(t *testing.T) {
	s := snapshotWithOrders()
	kitchen := KitchenTickets(s)
	require.Len(t, kitchen, 1)
	assert.Equal(t, "ชำระแล้ว", kitchen[0].StatusLabel)
	require.Len(t, kitchen[0].Actions, 1)
	assert.Equal(t, models.OrderStatusPreparing, kitchen[0].Actions[0].Status)

	serving := ServingTickets(s)
	require.Len(t, serving, 1)
	assert.Equal(t, models.OrderStatusServed, serving[0].Actions[0].Status)
}
