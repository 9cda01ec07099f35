package server

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	catalogcontroller "brewline/internal/catalog/controller"
	"brewline/internal/dto"
	feedbackcontroller "brewline/internal/feedback/controller"
	inventorycontroller "brewline/internal/inventory/controller"
	ordercontroller "brewline/internal/order/controller"
)

// NewRouter assembles the API surface under /api/v1.
func NewRouter(
	db *sql.DB,
	menu *catalogcontroller.Controller,
	orders *ordercontroller.Controller,
	inventory *inventorycontroller.Controller,
	feedback *feedbackcontroller.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogger(logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler(db))

		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menu.HandleListMenu)
			r.Get("/available", menu.HandleListAvailable)
			r.Get("/category/{categoryID}", menu.HandleListByCategory)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orders.HandlePlaceOrder)
			r.Get("/", orders.HandleListOrders)
			r.Get("/{id}", orders.HandleGetOrder)
			r.Get("/phone/{phone}", orders.HandleListOrdersByPhone)
			r.Put("/{id}/status", orders.HandleUpdateStatus)
			r.Put("/{id}/payment", orders.HandleUpdatePayment)
			r.Delete("/{id}", orders.HandleCancelOrder)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", inventory.HandleListItems)
				r.Post("/", inventory.HandleCreateItem)
				r.Put("/{id}", inventory.HandleUpdateItem)
				r.Delete("/{id}", inventory.HandleDeleteItem)
			})
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", inventory.HandlePlaceOrder)
				r.Get("/", inventory.HandleListOrders)
				r.Put("/{id}/purchased", inventory.HandleMarkPurchased)
			})
		})

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", feedback.HandleSubmit)
			r.Get("/", feedback.HandleList)
		})
	})

	return r
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(dto.Fail("database unreachable"))
			return
		}
		_ = json.NewEncoder(w).Encode(dto.OKMessage("Server is running", nil))
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
