package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-tab/models"
)

func seedProviderManager(t *testing.T, f *fixture) models.ProviderManager {
	t.Helper()
	manager := models.ProviderManager{
		ProviderID: f.provider.ID,
		Name:       "Paula",
		Username:   "paula",
		Password:   "x",
	}
	require.NoError(t, f.db.Create(&manager).Error)
	return manager
}

func TestCreateRestaurant(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	paula := seedProviderManager(t, f)
	svc := NewProviderService(db)

	expires := time.Now().Add(90 * 24 * time.Hour)
	restaurant, err := svc.CreateRestaurant(paula.ID, "Nuova Cucina", 8, expires)
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, restaurant.ProviderID)
	assert.Equal(t, 8, restaurant.MaxTables)
	assert.True(t, restaurant.IsActive())

	_, err = svc.CreateRestaurant(paula.ID, "", 8, expires)
	requireKind(t, err, KindValidation)
	_, err = svc.CreateRestaurant(paula.ID, "No Tables", 0, expires)
	requireKind(t, err, KindValidation)
}

func TestChangeExpirationReactivates(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	paula := seedProviderManager(t, f)
	f.expireRestaurant(t)
	svc := NewProviderService(db)

	restaurant, err := svc.ChangeExpiration(paula.ID, f.restaurant.ID, time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.True(t, restaurant.IsActive())

	// Expired again: sessions are refused, but the lookup itself works.
	restaurant, err = svc.ChangeExpiration(paula.ID, f.restaurant.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, restaurant.IsActive())
}

func TestChangeExpirationForeignProvider(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	svc := NewProviderService(db)

	otherProvider := models.Provider{Name: "CompetitorHub"}
	require.NoError(t, db.Create(&otherProvider).Error)
	intruder := models.ProviderManager{
		ProviderID: otherProvider.ID,
		Name:       "Ivan",
		Username:   "ivan",
		Password:   "x",
	}
	require.NoError(t, db.Create(&intruder).Error)

	_, err := svc.ChangeExpiration(intruder.ID, f.restaurant.ID, time.Now().Add(24*time.Hour))
	requireKind(t, err, KindUnauthorized)
}

func TestListRestaurants(t *testing.T) {
	db := setupTestDB(t)
	f := seedRestaurant(t, db)
	paula := seedProviderManager(t, f)
	svc := NewProviderService(db)

	_, err := svc.CreateRestaurant(paula.ID, "Second Venue", 3, time.Now().Add(time.Hour))
	require.NoError(t, err)

	restaurants, err := svc.ListRestaurants(paula.ID)
	require.NoError(t, err)
	assert.Len(t, restaurants, 2)
}
