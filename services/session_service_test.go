package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-tab/models"
)

func TestCreateSession(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	assert.Equal(t, models.SessionStatusOpened, session.Status)
	assert.Len(t, session.Password, 6)
	assert.Equal(t, []string{"Mains"}, session.Categories)
	assert.Nil(t, session.FinishedAt)

	require.Len(t, session.Participants, 1)
	assert.True(t, session.Participants[0].IsLeader)
	assert.Equal(t, f.alice.ID, session.Participants[0].CustomerID)
}

func TestCreateSessionTableAlreadyTaken(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	_, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	_, err = svc.Create(f.table.ID, f.bob.ID)
	requireKind(t, err, KindConflict)
}

func TestCreateSessionAfterPreviousFinished(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	first, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)
	_, err = svc.Finish(first.ID, f.manager.ID)
	require.NoError(t, err)

	second, err := svc.Create(f.table.ID, f.bob.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateSessionUnknownTable(t *testing.T) {
	db := setupTestDB(t)
	seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	_, err := svc.Create(999, 1)
	requireKind(t, err, KindNotFound)
}

func TestCreateSessionExpiredRestaurant(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	f.expireRestaurant(t)
	svc := NewTableSessionService(db)

	_, err := svc.Create(f.table.ID, f.alice.ID)
	requireKind(t, err, KindInactiveRestaurant)
}

func TestJoinSession(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	session, err = svc.Join(session.ID, f.bob.ID, session.Password)
	require.NoError(t, err)

	require.Len(t, session.Participants, 2)
	var joined *models.TableParticipant
	for i := range session.Participants {
		if session.Participants[i].CustomerID == f.bob.ID {
			joined = &session.Participants[i]
		}
	}
	require.NotNil(t, joined)
	assert.False(t, joined.IsLeader)
}

func TestJoinSessionWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	_, err = svc.Join(session.ID, f.bob.ID, "nope00")
	requireKind(t, err, KindInvalidCredentials)
}

func TestJoinSessionTwice(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	_, err = svc.Join(session.ID, f.bob.ID, session.Password)
	require.NoError(t, err)
	_, err = svc.Join(session.ID, f.bob.ID, session.Password)
	requireKind(t, err, KindConflict)
}

func TestJoinFinishedSession(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)
	_, err = svc.Finish(session.ID, f.manager.ID)
	require.NoError(t, err)

	_, err = svc.Join(session.ID, f.bob.ID, session.Password)
	requireKind(t, err, KindConflict)
}

func TestRequestPaymentByLeader(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	session, err = svc.RequestPayment(session.ID, f.alice.ID, RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusRequestedPayment, session.Status)
	require.NotNil(t, session.RequestedPaymentAt)
}

func TestRequestPaymentNonLeaderForbidden(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)
	_, err = svc.Join(session.ID, f.bob.ID, session.Password)
	require.NoError(t, err)

	_, err = svc.RequestPayment(session.ID, f.bob.ID, RoleCustomer)
	requireKind(t, err, KindUnauthorized)
}

func TestRequestPaymentByWaiterAndManager(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	_, err = svc.RequestPayment(session.ID, f.waiter.ID, RoleWaiter)
	require.NoError(t, err)

	_, err = svc.RequestPayment(session.ID, f.manager.ID, RoleRestaurant)
	require.NoError(t, err)
}

func TestRequestPaymentForeignWaiterForbidden(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	other := models.Restaurant{
		ProviderID: f.provider.ID,
		Name:       "Elsewhere",
		MaxTables:  3,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&other).Error)
	stranger := models.Waiter{
		RestaurantID: other.ID,
		Name:         "Sam",
		Username:     "sam",
		Password:     "x",
	}
	require.NoError(t, db.Create(&stranger).Error)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	_, err = svc.RequestPayment(session.ID, stranger.ID, RoleWaiter)
	requireKind(t, err, KindUnauthorized)
}

func TestRequestPaymentAgainRefreshesTimestamp(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	first, err := svc.RequestPayment(session.ID, f.alice.ID, RoleCustomer)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	second, err := svc.RequestPayment(session.ID, f.alice.ID, RoleCustomer)
	require.NoError(t, err)

	assert.True(t, second.RequestedPaymentAt.After(*first.RequestedPaymentAt) ||
		second.RequestedPaymentAt.Equal(*first.RequestedPaymentAt))
	assert.Equal(t, models.SessionStatusRequestedPayment, second.Status)
}

func TestFinishSession(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	session, err = svc.Finish(session.ID, f.manager.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusFinished, session.Status)
	require.NotNil(t, session.FinishedAt)

	// FINISHED is terminal.
	_, err = svc.Finish(session.ID, f.manager.ID)
	requireKind(t, err, KindConflict)
	_, err = svc.RequestPayment(session.ID, f.alice.ID, RoleCustomer)
	requireKind(t, err, KindConflict)
}

func TestGetActiveByTable(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.GetActiveByTable(f.table.ID)
	require.NoError(t, err)
	assert.Nil(t, session)

	created, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	session, err = svc.GetActiveByTable(f.table.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, created.ID, session.ID)

	_, err = svc.Finish(created.ID, f.manager.ID)
	require.NoError(t, err)

	session, err = svc.GetActiveByTable(f.table.ID)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetActiveByCustomer(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewTableSessionService(db)

	session, err := svc.GetActiveByCustomer(f.alice.ID)
	require.NoError(t, err)
	assert.Nil(t, session)

	created, err := svc.Create(f.table.ID, f.alice.ID)
	require.NoError(t, err)

	session, err = svc.GetActiveByCustomer(f.alice.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, created.ID, session.ID)

	// Bob never joined.
	session, err = svc.GetActiveByCustomer(f.bob.ID)
	require.NoError(t, err)
	assert.Nil(t, session)
}
