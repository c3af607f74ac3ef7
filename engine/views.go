package engine

import (
	"sort"
	"time"

	"github.com/yeremiapane/smart-pos/models"
)

// NeedsKitchen reports whether an order belongs on the kitchen display:
// New or Preparing, or already Paid but still carrying prep time.
func NeedsKitchen(o models.Order) bool {
	switch o.Status {
	case models.OrderStatusNew, models.OrderStatusPreparing:
		return true
	case models.OrderStatusPaid:
		return o.TotalPrepTime > 0
	}
	return false
}

// KitchenQueue returns the kitchen display, oldest first.
func KitchenQueue(s models.Snapshot) []models.Order {
	out := filterOrders(s.Orders, NeedsKitchen)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// ServingQueue returns the orders waiting to be carried out.
func ServingQueue(s models.Snapshot) []models.Order {
	return filterOrders(s.Orders, func(o models.Order) bool {
		return o.Status == models.OrderStatusReady
	})
}

// SalesHistory returns the orders that count as sales.
func SalesHistory(s models.Snapshot) []models.Order {
	return filterOrders(s.Orders, func(o models.Order) bool {
		return o.Status == models.OrderStatusPaid
	})
}

func filterOrders(orders []models.Order, keep func(models.Order) bool) []models.Order {
	out := make([]models.Order, 0)
	for _, o := range orders {
		if keep(o) {
			o.Lines = append([]models.OrderLine(nil), o.Lines...)
			out = append(out, o)
		}
	}
	return out
}

// TicketAction is a status change offered on a station ticket.
type TicketAction struct {
	Label  string             `json:"label"`
	Status models.OrderStatus `json:"status"`
}

// KitchenActions lists the buttons a kitchen ticket offers.
func KitchenActions(o models.Order) []TicketAction {
	switch {
	case o.Status == models.OrderStatusNew,
		o.Status == models.OrderStatusPaid && o.TotalPrepTime > 0:
		return []TicketAction{{Label: "เริ่มทำอาหาร", Status: models.OrderStatusPreparing}}
	case o.Status == models.OrderStatusPreparing:
		return []TicketAction{{Label: "เสร็จแล้ว (พร้อมเสิร์ฟ)", Status: models.OrderStatusReady}}
	}
	return nil
}

// ServingActions lists the buttons a serving ticket offers.
func ServingActions(o models.Order) []TicketAction {
	if o.Status == models.OrderStatusReady {
		return []TicketAction{{Label: "เสิร์ฟแล้ว", Status: models.OrderStatusServed}}
	}
	return nil
}

type DaySales struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

type BestSeller struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type Dashboard struct {
	TodaySales      float64      `json:"today_sales"`
	TodayOrders     int          `json:"today_orders"`
	TodayCommission float64      `json:"today_commission"`
	ProductCount    int          `json:"product_count"`
	SalesByDay      []DaySales   `json:"sales_by_day"`
	BestSellers     []BestSeller `json:"best_sellers"`
}

const (
	dashboardDays  = 7
	bestSellerSize = 5
	dayLayout      = "2006-01-02"
)

// BuildDashboard aggregates Paid orders by day and by product. Days are
// calendar dates in now's location.
func BuildDashboard(s models.Snapshot, now time.Time) Dashboard {
	history := SalesHistory(s)
	loc := now.Location()
	today := now.Format(dayLayout)

	days := make([]DaySales, dashboardDays)
	dayIndex := make(map[string]int, dashboardDays)
	for i := 0; i < dashboardDays; i++ {
		d := now.AddDate(0, 0, i-(dashboardDays-1)).Format(dayLayout)
		days[i] = DaySales{Date: d}
		dayIndex[d] = i
	}

	d := Dashboard{ProductCount: len(s.Products), SalesByDay: days}
	counts := make(map[string]int)
	names := make(map[string]string)
	for _, o := range history {
		date := o.CreatedAt.In(loc).Format(dayLayout)
		if date == today {
			d.TodaySales += o.Total
			d.TodayOrders++
		}
		if i, ok := dayIndex[date]; ok {
			days[i].Sales += o.Total
			days[i].Orders++
		}
		for _, l := range o.Lines {
			counts[l.Product.ID] += l.Quantity
			if _, seen := names[l.Product.ID]; !seen {
				names[l.Product.ID] = l.Product.Name
			}
		}
	}
	d.TodayCommission = d.TodaySales * (s.Settings.CommissionRate / 100)

	sellers := make([]BestSeller, 0, len(counts))
	for id, qty := range counts {
		name := names[id]
		if p, ok := s.FindProduct(id); ok {
			name = p.Name
		}
		sellers = append(sellers, BestSeller{ProductID: id, Name: name, Quantity: qty})
	}
	sort.Slice(sellers, func(i, j int) bool {
		if sellers[i].Quantity != sellers[j].Quantity {
			return sellers[i].Quantity > sellers[j].Quantity
		}
		return sellers[i].ProductID < sellers[j].ProductID
	})
	if len(sellers) > bestSellerSize {
		sellers = sellers[:bestSellerSize]
	}
	d.BestSellers = sellers
	return d
}
