package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-tab/models"
)

func viewFixtureSession() *models.TableSession {
	base := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	waiter := &models.Waiter{Name: "Walter", OneSignalID: "walter-device"}

	return &models.TableSession{
		ID:       7,
		TableID:  3,
		Table:    models.Table{ID: 3, Number: 12, RestaurantID: 1, Waiter: waiter},
		Password: "abc123",
		Status:   models.SessionStatusOpened,
		Participants: []models.TableParticipant{
			{
				ID: 2, CustomerID: 20, IsLeader: false, JoinedAt: base.Add(5 * time.Minute),
				Customer: models.Customer{Username: "bob", Name: "Bob"},
			},
			{
				ID: 1, CustomerID: 10, IsLeader: true, JoinedAt: base,
				Customer: models.Customer{Username: "alice", Name: "Alice"},
			},
		},
		Orders: []models.Order{
			{
				ID: 200, TableParticipantID: 2, RequestedAt: base.Add(10 * time.Minute),
				Items: []models.OrderItem{
					{ProductID: 1, Name: "Pasta", PriceInCents: 2500, Amount: 1, Status: models.ItemStatusRequested},
				},
			},
			{
				ID: 100, TableParticipantID: 1, RequestedAt: base.Add(2 * time.Minute),
				Items: []models.OrderItem{
					{ProductID: 1, Name: "Pasta", PriceInCents: 2500, Amount: 2, Status: models.ItemStatusServed},
					{ProductID: 2, Name: "Lemonade", PriceInCents: 800, Amount: 3, Status: models.ItemStatusCanceled},
				},
			},
		},
		Categories: []string{"Drinks", "Mains"},
		OpenedAt:   base,
	}
}

func TestBuildSessionViewOrdering(t *testing.T) {
	view := BuildSessionView(viewFixtureSession())

	// Participants sorted by join time, orders by request time.
	require.Len(t, view.Participants, 2)
	assert.Equal(t, "alice", view.Participants[0].Username)
	assert.True(t, view.Participants[0].IsLeader)
	assert.Equal(t, "bob", view.Participants[1].Username)

	require.Len(t, view.Orders, 2)
	assert.Equal(t, uint(100), view.Orders[0].ID)
	assert.Equal(t, uint(200), view.Orders[1].ID)

	require.NotNil(t, view.Waiter)
	assert.Equal(t, "Walter", *view.Waiter)
	assert.Equal(t, "walter-device", view.WaiterNotificationID)
	assert.Equal(t, 12, view.TableNumber)
}

func TestBuildSessionViewBill(t *testing.T) {
	view := BuildSessionView(viewFixtureSession())

	// Canceled lemonade is excluded; pasta lines from both orders merge.
	require.Len(t, view.Bill, 1)
	assert.Equal(t, "Pasta", view.Bill[0].Name)
	assert.Equal(t, 3, view.Bill[0].Amount)
	assert.Equal(t, 7500, view.Bill[0].TotalPriceCents)
	assert.Equal(t, 7500, view.TotalPriceCents)
}

func TestBuildSessionViewBillSortedByTotal(t *testing.T) {
	session := viewFixtureSession()
	session.Orders = append(session.Orders, models.Order{
		ID: 300, TableParticipantID: 1, RequestedAt: session.OpenedAt.Add(20 * time.Minute),
		Items: []models.OrderItem{
			{ProductID: 3, Name: "Truffle", PriceInCents: 90000, Amount: 1, Status: models.ItemStatusRequested},
			{ProductID: 4, Name: "Water", PriceInCents: 300, Amount: 1, Status: models.ItemStatusRequested},
		},
	})

	view := BuildSessionView(session)
	require.Len(t, view.Bill, 3)
	assert.Equal(t, "Truffle", view.Bill[0].Name)
	assert.Equal(t, "Pasta", view.Bill[1].Name)
	assert.Equal(t, "Water", view.Bill[2].Name)
}

func TestBuildSessionViewPerParticipantBills(t *testing.T) {
	view := BuildSessionView(viewFixtureSession())

	require.Len(t, view.BillPerParticipant, 2)

	alice := view.BillPerParticipant[0]
	assert.Equal(t, "alice", alice.Participant.Username)
	assert.Equal(t, 5000, alice.TotalPriceCents)

	bob := view.BillPerParticipant[1]
	assert.Equal(t, "bob", bob.Participant.Username)
	assert.Equal(t, 2500, bob.TotalPriceCents)

	assert.Equal(t, view.TotalPriceCents, alice.TotalPriceCents+bob.TotalPriceCents)
}

func TestDeriveOrderStatus(t *testing.T) {
	cases := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"all requested", []string{models.ItemStatusRequested, models.ItemStatusRequested}, models.ItemStatusRequested},
		{"mixed pending", []string{models.ItemStatusServed, models.ItemStatusRequested}, models.ItemStatusRequested},
		{"all served", []string{models.ItemStatusServed, models.ItemStatusServed}, models.ItemStatusServed},
		{"served and canceled", []string{models.ItemStatusServed, models.ItemStatusCanceled}, models.ItemStatusServed},
		{"all canceled", []string{models.ItemStatusCanceled, models.ItemStatusCanceled}, models.ItemStatusCanceled},
		{"canceled and requested", []string{models.ItemStatusCanceled, models.ItemStatusRequested}, models.ItemStatusRequested},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := make([]OrderItemView, 0, len(tc.statuses))
			for _, s := range tc.statuses {
				items = append(items, OrderItemView{Status: s})
			}
			assert.Equal(t, tc.want, deriveOrderStatus(items))
		})
	}
}

func TestBuildSessionViewIsPure(t *testing.T) {
	session := viewFixtureSession()

	first, err := json.Marshal(BuildSessionView(session))
	require.NoError(t, err)
	second, err := json.Marshal(BuildSessionView(session))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
}

func TestBuildSessionViewEmptySession(t *testing.T) {
	session := &models.TableSession{
		ID:      1,
		TableID: 1,
		Table:   models.Table{ID: 1, Number: 1, RestaurantID: 1},
		Status:  models.SessionStatusOpened,
	}

	view := BuildSessionView(session)
	assert.Nil(t, view.Waiter)
	assert.Empty(t, view.WaiterNotificationID)
	assert.Zero(t, view.TotalPriceCents)

	// Empty collections marshal as [] rather than null.
	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bill":[]`)
	assert.Contains(t, string(data), `"participants":[]`)
	assert.Contains(t, string(data), `"orders":[]`)
}
