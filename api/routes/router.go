package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ivnfdzz/PickNPlay-sub000/api/controllers"
	"github.com/Ivnfdzz/PickNPlay-sub000/api/middleware"
	auditsvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/audit"
	authsvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/auth"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/catalog"
	ordersvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/orders"
	"github.com/Ivnfdzz/PickNPlay-sub000/internal/paymentmethods"
	usersvc "github.com/Ivnfdzz/PickNPlay-sub000/internal/users"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/auth/session"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/config"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/logger"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/metrics"
	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/redis"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTP
	Metrics     http.Handler

	Auth           authsvc.Service
	Catalog        catalog.Service
	PaymentMethods paymentmethods.Service
	Users          usersvc.Service
	Orders         ordersvc.Service
	Audit          auditsvc.Service
}

// NewRouter builds the full HTTP surface: the public kiosk routes, the
// authenticated staff routes behind the permission gate, and the audit
// interceptor on the staff mutation groups.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	// 10 attempts per IP and 5 per email in a 15 minute window.
	loginPolicy := middleware.NewAuthRateLimitPolicy("login", 15*time.Minute, 10, 5)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}

	// Public kiosk surface. Customers browse the catalog and submit
	// orders without authenticating.
	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{id}", controllers.GetProduct(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/payment-methods", controllers.ListPaymentMethods(deps.PaymentMethods, logg))
		r.Post("/orders", controllers.SubmitOrder(deps.Orders, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).
			Post("/logout", controllers.Logout(deps.Auth, logg))
	})

	// Staff surface. Every route is authenticated and checked against
	// the role matrix; mutation groups carry the audit interceptor.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Get("/ping", controllers.StaffPing())

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AuditTrail(deps.Audit, enums.EntityProduct, logg))
			r.With(perm(enums.EntityProduct, enums.OperationList, logg)).Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.With(perm(enums.EntityProduct, enums.OperationSearch, logg)).Get("/search", controllers.SearchProducts(deps.Catalog, logg))
			r.With(perm(enums.EntityProduct, enums.OperationRead, logg)).Get("/{id}", controllers.GetProduct(deps.Catalog, logg))
			r.With(perm(enums.EntityProduct, enums.OperationCreate, logg)).Post("/", controllers.CreateProduct(deps.Catalog, logg))
			r.With(perm(enums.EntityProduct, enums.OperationUpdate, logg)).Put("/{id}", controllers.UpdateProduct(deps.Catalog, logg))
			r.With(perm(enums.EntityProduct, enums.OperationDelete, logg)).Delete("/{id}", controllers.DeleteProduct(deps.Catalog, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			categoryTrail := middleware.AuditTrail(deps.Audit, enums.EntityCategory, logg)
			subcategoryTrail := middleware.AuditTrail(deps.Audit, enums.EntitySubcategory, logg)
			r.With(perm(enums.EntityCategory, enums.OperationList, logg)).Get("/", controllers.ListCategories(deps.Catalog, logg))
			r.With(perm(enums.EntityCategory, enums.OperationRead, logg)).Get("/{id}", controllers.GetCategory(deps.Catalog, logg))
			r.With(perm(enums.EntityCategory, enums.OperationCreate, logg), categoryTrail).Post("/", controllers.CreateCategory(deps.Catalog, logg))
			r.With(perm(enums.EntityCategory, enums.OperationDelete, logg)).Delete("/{id}", controllers.DeleteCategory(deps.Catalog, logg))
			r.With(perm(enums.EntitySubcategory, enums.OperationCreate, logg), subcategoryTrail).Post("/{id}/subcategories", controllers.CreateSubcategory(deps.Catalog, logg))
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.With(perm(enums.EntitySubcategory, enums.OperationDelete, logg)).Delete("/{id}", controllers.DeleteSubcategory(deps.Catalog, logg))
		})

		r.Route("/payment-methods", func(r chi.Router) {
			r.Use(middleware.AuditTrail(deps.Audit, enums.EntityPaymentMethod, logg))
			r.With(perm(enums.EntityPaymentMethod, enums.OperationList, logg)).Get("/", controllers.ListPaymentMethods(deps.PaymentMethods, logg))
			r.With(perm(enums.EntityPaymentMethod, enums.OperationRead, logg)).Get("/{id}", controllers.GetPaymentMethod(deps.PaymentMethods, logg))
			r.With(perm(enums.EntityPaymentMethod, enums.OperationCreate, logg)).Post("/", controllers.CreatePaymentMethod(deps.PaymentMethods, logg))
			r.With(perm(enums.EntityPaymentMethod, enums.OperationDelete, logg)).Delete("/{id}", controllers.DeletePaymentMethod(deps.PaymentMethods, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.AuditTrail(deps.Audit, enums.EntityUser, logg))
			r.With(perm(enums.EntityUser, enums.OperationList, logg)).Get("/", controllers.ListUsers(deps.Users, logg))
			r.With(perm(enums.EntityUser, enums.OperationRead, logg)).Get("/{id}", controllers.GetUser(deps.Users, logg))
			r.With(perm(enums.EntityUser, enums.OperationCreate, logg)).Post("/", controllers.CreateUser(deps.Users, logg))
			r.With(perm(enums.EntityUser, enums.OperationDelete, logg)).Delete("/{id}", controllers.DeleteUser(deps.Users, logg))
		})

		r.Route("/roles", func(r chi.Router) {
			r.With(perm(enums.EntityRole, enums.OperationList, logg)).Get("/", controllers.ListRoles(deps.Users, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(perm(enums.EntityOrder, enums.OperationList, logg)).Get("/", controllers.ListOrders(deps.Orders, logg))
			r.With(perm(enums.EntityOrder, enums.OperationSearch, logg)).Get("/search", controllers.SearchOrders(deps.Orders, logg))
			r.With(perm(enums.EntityOrder, enums.OperationRead, logg)).Get("/{id}", controllers.GetOrder(deps.Orders, logg))
		})

		r.Route("/audit", func(r chi.Router) {
			r.With(perm(enums.EntityAudit, enums.OperationList, logg)).Get("/", controllers.QueryAuditLog(deps.Audit, logg))
			r.With(perm(enums.EntityAudit, enums.OperationRead, logg)).Get("/summary", controllers.SummarizeAuditLog(deps.Audit, logg))
		})
	})

	return r
}

func perm(entity enums.EntityKind, op enums.Operation, logg *logger.Logger) func(http.Handler) http.Handler {
	return middleware.RequirePermission(entity, op, logg)
}
