package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

// Event types
const (
	EventKitchenUpdate   = "kitchen_update"
	EventServingUpdate   = "serving_update"
	EventDashboardUpdate = "dashboard_update"
	EventCatalogUpdate   = "catalog_update"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

type Message struct {
	Event  string            `json:"event"`
	Intent engine.IntentKind `json:"intent,omitempty"`
	Data   interface{}       `json:"data"`
}

// Ticket is an order as a station screen shows it.
type Ticket struct {
	Order       models.Order          `json:"order"`
	StatusLabel string                `json:"status_label"`
	Actions     []engine.TicketAction `json:"actions"`
}

func KitchenTickets(s models.Snapshot) []Ticket {
	return tickets(engine.KitchenQueue(s), engine.KitchenActions)
}

func ServingTickets(s models.Snapshot) []Ticket {
	return tickets(engine.ServingQueue(s), engine.ServingActions)
}

func tickets(orders []models.Order, actions func(models.Order) []engine.TicketAction) []Ticket {
	out := make([]Ticket, 0, len(orders))
	for _, o := range orders {
		out = append(out, Ticket{Order: o, StatusLabel: o.Status.Label(), Actions: actions(o)})
	}
	return out
}

type client struct {
	conn *websocket.Conn
	role models.UserRole
	send chan []byte
}

// Hub pushes refreshed station views to connected screens. Each screen only
// receives the views its role may read.
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.Mutex
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		now:     time.Now,
	}
}

// Messages builds the messages a role receives for snap.
func (h *Hub) Messages(role models.UserRole, snap models.Snapshot, kind engine.IntentKind) []Message {
	views := engine.AllowedViews(role)
	var msgs []Message
	if views[engine.ViewKitchen] {
		msgs = append(msgs, Message{Event: EventKitchenUpdate, Intent: kind, Data: KitchenTickets(snap)})
	}
	if views[engine.ViewServing] {
		msgs = append(msgs, Message{Event: EventServingUpdate, Intent: kind, Data: ServingTickets(snap)})
	}
	if views[engine.ViewDashboard] {
		msgs = append(msgs, Message{Event: EventDashboardUpdate, Intent: kind, Data: engine.BuildDashboard(snap, h.now())})
	}
	if views[engine.ViewSales] || views[engine.ViewProducts] {
		msgs = append(msgs, Message{Event: EventCatalogUpdate, Intent: kind, Data: snap.Products})
	}
	return msgs
}

// ViewFunc calls fn with the current snapshot while no intent can be
// applied. services.Terminal.View is one.
type ViewFunc func(fn func(models.Snapshot))

// Serve registers conn, sends the current views and blocks reading from the
// connection until it fails. Registration happens inside view, so every
// intent applied afterwards reaches the screen through Publish.
func (h *Hub) Serve(conn *websocket.Conn, role models.UserRole, view ViewFunc) {
	c := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}
	view(func(snap models.Snapshot) {
		h.mutex.Lock()
		defer h.mutex.Unlock()
		h.clients[c] = struct{}{}
		h.wg.Add(1)
		h.enqueue(c, h.Messages(role, snap, ""))
	})

	go h.writePump(c)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
}

// Publish is a services.Listener: it fans the new views out to every
// screen without blocking. Screens that fall behind are disconnected.
func (h *Hub) Publish(snap models.Snapshot, kind engine.IntentKind) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	byRole := make(map[models.UserRole][]Message)
	for c := range h.clients {
		msgs, ok := byRole[c.role]
		if !ok {
			msgs = h.Messages(c.role, snap, kind)
			byRole[c.role] = msgs
		}
		h.enqueue(c, msgs)
	}
}

// enqueue expects h.mutex to be held.
func (h *Hub) enqueue(c *client, msgs []Message) {
	for _, msg := range msgs {
		data, err := json.Marshal(msg)
		if err != nil {
			utils.ErrorLogger.Errorf("Error marshaling %s message: %v", msg.Event, err)
			continue
		}
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.Warnf("Dropping slow %s screen", c.role)
			h.removeLocked(c)
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer h.wg.Done()
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending message to %s screen: %v", c.role, err)
			h.unregister(c)
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Clients returns the number of connected screens.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Close disconnects every screen and waits for their writers to finish.
func (h *Hub) Close() {
	h.mutex.Lock()
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.mutex.Unlock()
	h.wg.Wait()
}
