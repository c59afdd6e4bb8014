package services

import (
	"sort"
	"time"

	"github.com/yeremiapane/restaurant-tab/models"
)

// SessionView is what the outside world sees of a table session: the raw
// session plus every derived figure (bills, totals, order statuses). It is
// rebuilt from the persisted rows on every read and never stored, so the
// derived values cannot drift from the source of truth.
type SessionView struct {
	ID           uint    `json:"id"`
	RestaurantID uint    `json:"restaurant_id"`
	TableID      uint    `json:"table_id"`
	TableNumber  int     `json:"table_number"`
	Password     string  `json:"password"`
	Status       string  `json:"status"`
	Waiter       *string `json:"waiter"`
	// WaiterNotificationID is the OneSignal player id of the table's waiter,
	// empty when the table has no waiter or the device never registered.
	WaiterNotificationID string            `json:"waiter_notification_id,omitempty"`
	Participants         []ParticipantView `json:"participants"`
	Orders               []OrderView       `json:"orders"`
	Categories           []string          `json:"categories"`
	Bill                 []BillItem        `json:"bill"`
	BillPerParticipant   []ParticipantBill `json:"bill_per_participant"`
	TotalPriceCents      int               `json:"total_price_cents"`
	FinishedAt           *time.Time        `json:"finished_at"`
}

type ParticipantView struct {
	ID         uint      `json:"id"`
	CustomerID uint      `json:"customer_id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	IsLeader   bool      `json:"is_leader"`
	JoinedAt   time.Time `json:"joined_at"`
}

type OrderView struct {
	ID                 uint            `json:"id"`
	TableParticipantID uint            `json:"table_participant_id"`
	RequestedAt        time.Time       `json:"requested_at"`
	Status             string          `json:"status"`
	Items              []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ProductID    uint       `json:"product_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ImageUrl     *string    `json:"image_url"`
	PriceInCents int        `json:"price_in_cents"`
	Amount       int        `json:"amount"`
	Status       string     `json:"status"`
	ServedAt     *time.Time `json:"served_at"`
	CanceledAt   *time.Time `json:"canceled_at"`
}

type BillItem struct {
	ProductID       uint    `json:"product_id"`
	Name            string  `json:"name"`
	ImageUrl        *string `json:"image_url"`
	Amount          int     `json:"amount"`
	TotalPriceCents int     `json:"total_price_cents"`
}

type ParticipantBill struct {
	Participant     ParticipantView `json:"participant"`
	Bill            []BillItem      `json:"bill"`
	TotalPriceCents int             `json:"total_price_cents"`
}

// BuildSessionView derives the external view from a fully loaded session
// (Table.Waiter, Participants.Customer and Orders.Items preloaded). Pure:
// calling it twice over the same rows yields identical output.
func BuildSessionView(session *models.TableSession) SessionView {
	participants := buildParticipants(session)
	orders := buildOrders(session)

	view := SessionView{
		ID:                 session.ID,
		RestaurantID:       session.Table.RestaurantID,
		TableID:            session.TableID,
		TableNumber:        session.Table.Number,
		Password:           session.Password,
		Status:             session.Status,
		Participants:       participants,
		Orders:             orders,
		Categories:         session.Categories,
		Bill:               buildBill(orders),
		BillPerParticipant: buildParticipantBills(participants, orders),
		TotalPriceCents:    sumPriceCents(orders),
		FinishedAt:         session.FinishedAt,
	}

	if session.Table.Waiter != nil {
		name := session.Table.Waiter.Name
		view.Waiter = &name
		view.WaiterNotificationID = session.Table.Waiter.OneSignalID
	}

	return view
}

func buildParticipants(session *models.TableSession) []ParticipantView {
	participants := make([]ParticipantView, 0, len(session.Participants))
	for _, p := range session.Participants {
		participants = append(participants, ParticipantView{
			ID:         p.ID,
			CustomerID: p.CustomerID,
			Username:   p.Customer.Username,
			Name:       p.Customer.Name,
			IsLeader:   p.IsLeader,
			JoinedAt:   p.JoinedAt,
		})
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].JoinedAt.Before(participants[j].JoinedAt)
	})
	return participants
}

func buildOrders(session *models.TableSession) []OrderView {
	orders := make([]OrderView, 0, len(session.Orders))
	for _, o := range session.Orders {
		items := make([]OrderItemView, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, OrderItemView{
				ProductID:    item.ProductID,
				Name:         item.Name,
				Description:  item.Description,
				ImageUrl:     item.ImageUrl,
				PriceInCents: item.PriceInCents,
				Amount:       item.Amount,
				Status:       item.Status,
				ServedAt:     item.ServedAt,
				CanceledAt:   item.CanceledAt,
			})
		}
		orders = append(orders, OrderView{
			ID:                 o.ID,
			TableParticipantID: o.TableParticipantID,
			RequestedAt:        o.RequestedAt,
			Status:             deriveOrderStatus(items),
			Items:              items,
		})
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].RequestedAt.Before(orders[j].RequestedAt)
	})
	return orders
}

// deriveOrderStatus: CANCELED when every item is canceled, REQUESTED while
// any item is still pending, SERVED otherwise.
func deriveOrderStatus(items []OrderItemView) string {
	allCanceled := true
	for _, item := range items {
		if item.Status != models.ItemStatusCanceled {
			allCanceled = false
			break
		}
	}
	if allCanceled {
		return models.ItemStatusCanceled
	}
	for _, item := range items {
		if item.Status == models.ItemStatusRequested {
			return models.ItemStatusRequested
		}
	}
	return models.ItemStatusServed
}

// buildBill groups the non-canceled items of the given orders by product and
// accumulates amounts and totals, most expensive line first.
func buildBill(orders []OrderView) []BillItem {
	bill := []BillItem{}
	index := make(map[uint]int)

	for _, order := range orders {
		for _, item := range order.Items {
			if item.Status == models.ItemStatusCanceled {
				continue
			}

			lineTotal := item.Amount * item.PriceInCents
			if i, ok := index[item.ProductID]; ok {
				bill[i].Amount += item.Amount
				bill[i].TotalPriceCents += lineTotal
				continue
			}

			index[item.ProductID] = len(bill)
			bill = append(bill, BillItem{
				ProductID:       item.ProductID,
				Name:            item.Name,
				ImageUrl:        item.ImageUrl,
				Amount:          item.Amount,
				TotalPriceCents: lineTotal,
			})
		}
	}

	sort.SliceStable(bill, func(i, j int) bool {
		return bill[i].TotalPriceCents > bill[j].TotalPriceCents
	})
	return bill
}

func sumPriceCents(orders []OrderView) int {
	total := 0
	for _, order := range orders {
		for _, item := range order.Items {
			if item.Status == models.ItemStatusCanceled {
				continue
			}
			total += item.Amount * item.PriceInCents
		}
	}
	return total
}

func buildParticipantBills(participants []ParticipantView, orders []OrderView) []ParticipantBill {
	bills := make([]ParticipantBill, 0, len(participants))
	for _, participant := range participants {
		var owned []OrderView
		for _, order := range orders {
			if order.TableParticipantID == participant.ID {
				owned = append(owned, order)
			}
		}
		bills = append(bills, ParticipantBill{
			Participant:     participant,
			Bill:            buildBill(owned),
			TotalPriceCents: sumPriceCents(owned),
		})
	}
	return bills
}
