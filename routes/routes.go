// Package routes provides the backend API paths consumed by the client,
// shared across the service clients to prevent path drift.
package routes

const (
	// Health is the backend liveness probe.
	Health = "/health"

	// AuthLogin exchanges username/email and password for a token pair.
	AuthLogin = "/api/auth/login"

	// AuthPinLogin exchanges a user id and PIN for a token pair (fast staff
	// switch-over on a shared terminal).
	AuthPinLogin = "/api/auth/pin-login"

	// AuthRefresh swaps a refresh token for a new token pair.
	AuthRefresh = "/api/auth/refresh" // #nosec G101 -- route path, not a credential

	// AuthLogout revokes a refresh token server-side.
	AuthLogout = "/api/auth/logout"

	// AuthUsersList returns staff summaries for the PIN login screen.
	AuthUsersList = "/api/auth/users-list"

	// ConfigPublic exposes the unauthenticated terminal configuration.
	ConfigPublic = "/api/config/public"

	// Products is the menu item collection.
	Products = "/api/products"

	// Categories is the menu category collection.
	Categories = "/api/categories"

	// Modifiers is the order modifier collection.
	Modifiers = "/api/modifiers"

	// Orders is the order collection.
	Orders = "/api/orders"

	// Tables is the floor-plan table collection.
	Tables = "/api/tables"

	// Customers is the customer collection.
	Customers = "/api/customers"

	// CashSessions manages register open/close sessions.
	CashSessions = "/api/cash-register/sessions"

	// CashPayments records order payments against the active session.
	CashPayments = "/api/cash-register/payments"

	// ReportsDailySales aggregates a day's orders.
	ReportsDailySales = "/api/reports/daily-sales"

	// ReportsTopProducts ranks products by quantity sold.
	ReportsTopProducts = "/api/reports/top-products"

	// ReportsRevenueByPeriod buckets revenue by day, week, or month.
	ReportsRevenueByPeriod = "/api/reports/revenue-by-period"
)
