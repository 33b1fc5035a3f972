// Package server wires the HTTP routes and cross-cutting middleware.
package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"stockpilot/backend/internal/auth"
	"stockpilot/backend/internal/cache"
	"stockpilot/backend/internal/handlers"
	"stockpilot/backend/internal/httpx"
	"stockpilot/backend/internal/repository"
	"stockpilot/backend/internal/services"
)

// Deps carries everything the router needs to construct handlers.
type Deps struct {
	DB      *gorm.DB
	Auth    *auth.Manager
	Summary cache.SummaryCache
	// SummaryTTL bounds how long the dashboard numbers may be served
	// from cache.
	SummaryTTL time.Duration
	// Gate holds the authorization policies; nil means DefaultGate.
	Gate *auth.Gate
}

// New constructs the root http.Handler with all routes and middleware
// applied.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()
	if d.Gate == nil {
		d.Gate = auth.DefaultGate()
	}

	items := repository.NewItemRepository(d.DB)
	categories := repository.NewCategoryRepository(d.DB)
	customers := repository.NewCustomerRepository(d.DB)
	invoices := repository.NewInvoiceRepository(d.DB)
	transactions := repository.NewTransactionRepository(d.DB)
	users := repository.NewUserRepository(d.DB)

	invoiceSvc := services.NewInvoiceService(d.DB)
	inventorySvc := services.NewInventoryService(d.DB)
	reportSvc := services.NewReportService(d.DB, d.Summary, d.SummaryTTL)

	// Health endpoints
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := d.DB.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ah := handlers.NewAuthHandler(d.Auth, users)
	mux.HandleFunc("/login", ah.Login)
	mux.Handle("/profile/password", protect(d, http.HandlerFunc(ah.ChangePassword)))
	mux.Handle("/users/deactivate", admin(d, http.HandlerFunc(ah.Deactivate)))

	ih := handlers.NewItemHandler(items)
	mux.Handle("/items", protect(d, http.HandlerFunc(ih.Collection)))
	mux.Handle("/item", protect(d, http.HandlerFunc(ih.Resource)))
	mux.Handle("/items/search", protect(d, http.HandlerFunc(ih.Search)))
	mux.Handle("/items/low-stock", protect(d, http.HandlerFunc(ih.LowStock)))
	mux.Handle("/items/export", protect(d, http.HandlerFunc(ih.Export)))

	ch := handlers.NewCategoryHandler(categories, items)
	mux.Handle("/categories", protect(d, http.HandlerFunc(ch.Collection)))
	mux.Handle("/category", protect(d, http.HandlerFunc(ch.Resource)))

	cu := handlers.NewCustomerHandler(customers)
	mux.Handle("/customers", protect(d, http.HandlerFunc(cu.Collection)))
	mux.Handle("/customer", protect(d, http.HandlerFunc(cu.Resource)))
	mux.Handle("/customers/search", protect(d, http.HandlerFunc(cu.Search)))

	vh := handlers.NewInvoiceHandler(invoiceSvc, invoices, items, customers)
	mux.Handle("/invoices", protect(d, http.HandlerFunc(vh.Collection)))
	mux.Handle("/invoice", protect(d, http.HandlerFunc(vh.Resource)))
	mux.Handle("/invoice/status", protect(d, http.HandlerFunc(vh.UpdateStatus)))
	mux.Handle("/invoice/pdf", protect(d, http.HandlerFunc(vh.PDF)))
	mux.Handle("/invoices/next-number", protect(d, http.HandlerFunc(vh.NextNumber)))

	th := handlers.NewTransactionHandler(inventorySvc, transactions)
	mux.Handle("/transactions", protect(d, http.HandlerFunc(th.Collection)))
	mux.Handle("/transactions/history", protect(d, http.HandlerFunc(th.History)))

	rh := handlers.NewReportHandler(reportSvc)
	mux.Handle("/reports/summary", protect(d, http.HandlerFunc(rh.Summary)))

	return withRecover(withLogging(mux))
}

func protect(d Deps, next http.Handler) http.Handler {
	return d.Auth.Middleware(auth.RequireAuth(next))
}

func admin(d Deps, next http.Handler) http.Handler {
	return d.Auth.Middleware(d.Gate.Require(auth.ActionManage, "users", next))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
