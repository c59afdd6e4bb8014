package services

// The closed set of authenticated roles. Authorization switches over these
// must stay exhaustive; unknown roles are rejected, never defaulted.
const (
	RoleCustomer   = "customer"
	RoleWaiter     = "waiter"
	RoleRestaurant = "restaurant"
	RoleProvider   = "provider"
)
