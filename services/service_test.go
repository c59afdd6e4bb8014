package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-tab/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Provider{},
		&models.ProviderManager{},
		&models.Restaurant{},
		&models.RestaurantManager{},
		&models.Waiter{},
		&models.Customer{},
		&models.Table{},
		&models.Category{},
		&models.Product{},
		&models.TableSession{},
		&models.TableParticipant{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// fixture is one seeded restaurant with a manager, a waiter, a table served
// by that waiter, two customers and a small catalog.
type fixture struct {
	db         *gorm.DB
	provider   models.Provider
	restaurant models.Restaurant
	manager    models.RestaurantManager
	waiter     models.Waiter
	table      models.Table
	alice      models.Customer
	bob        models.Customer
	category   models.Category
	pasta      models.Product // QUANTITY, stock 10, R$ 25,00
	lemonade   models.Product // AVAILABILITY, R$ 8,00
}

func seedRestaurant(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{db: db}

	f.provider = models.Provider{Name: "TabHub"}
	require.NoError(t, db.Create(&f.provider).Error)

	f.restaurant = models.Restaurant{
		ProviderID: f.provider.ID,
		Name:       "Trattoria Uno",
		MaxTables:  5,
		ExpiresAt:  time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&f.restaurant).Error)

	f.manager = models.RestaurantManager{
		RestaurantID: f.restaurant.ID,
		Name:         "Marta",
		Username:     "marta",
		Password:     "x",
		IsOwner:      true,
	}
	require.NoError(t, db.Create(&f.manager).Error)

	f.waiter = models.Waiter{
		RestaurantID: f.restaurant.ID,
		Name:         "Walter",
		Username:     "walter",
		Password:     "x",
		OneSignalID:  "walter-device",
	}
	require.NoError(t, db.Create(&f.waiter).Error)

	f.table = models.Table{
		Number:       1,
		RestaurantID: f.restaurant.ID,
		WaiterID:     &f.waiter.ID,
	}
	require.NoError(t, db.Create(&f.table).Error)

	f.alice = models.Customer{Name: "Alice", Username: "alice", Password: "x"}
	require.NoError(t, db.Create(&f.alice).Error)
	f.bob = models.Customer{Name: "Bob", Username: "bob", Password: "x"}
	require.NoError(t, db.Create(&f.bob).Error)

	f.category = models.Category{RestaurantID: f.restaurant.ID, Name: "Mains"}
	require.NoError(t, db.Create(&f.category).Error)

	f.pasta = models.Product{
		RestaurantID:     f.restaurant.ID,
		CategoryID:       f.category.ID,
		Name:             "Pasta",
		PriceInCents:     2500,
		AvailabilityType: models.AvailabilityTypeQuantity,
		AvailableAmount:  10,
	}
	require.NoError(t, db.Create(&f.pasta).Error)

	f.lemonade = models.Product{
		RestaurantID:     f.restaurant.ID,
		CategoryID:       f.category.ID,
		Name:             "Lemonade",
		PriceInCents:     800,
		AvailabilityType: models.AvailabilityTypeAvailability,
		IsAvailable:      true,
	}
	require.NoError(t, db.Create(&f.lemonade).Error)

	return f
}

// expireRestaurant pushes the subscription into the past.
func (f *fixture) expireRestaurant(t *testing.T) {
	t.Helper()
	require.NoError(t, f.db.Model(&f.restaurant).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*Error)
	require.True(t, ok, "expected *services.Error, got %T: %v", err, err)
	require.Equal(t, kind, svcErr.Kind)
}
