package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parceltrack/parcel-tracker/internal/middleware"
)

// SetupRouter настраивает маршруты API. Вебхук курьерской системы,
// регистрация и вход доступны без токена, остальные маршруты защищены.
func (h *Handler) SetupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.GzipMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusNotFound, envelope{Status: "error", Message: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeJSON(w, http.StatusMethodNotAllowed, envelope{Status: "error", Message: "method not allowed"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/webhook/courier", h.CourierWebhook)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Post("/logout", h.Logout)
			r.Get("/user", h.Me)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.ListClients)
				r.Get("/search", h.SearchClients)
				r.Post("/add", h.AddClient)
				r.Get("/{id}", h.GetClient)
				r.Post("/{id}/edit", h.EditClient)
				r.Post("/{id}/retoken", h.RetokenClient)
				r.Get("/{id}/parcels", h.ParcelsByClient)
			})

			r.Route("/parcels", func(r chi.Router) {
				r.Get("/", h.ListParcels)
				r.Post("/", h.AddParcel)
				r.Get("/{id}", h.GetParcel)
				r.Put("/{id}", h.EditParcel)
			})

			r.Route("/receivers", func(r chi.Router) {
				r.Get("/", h.ListReceivers)
				r.Get("/search", h.SearchReceivers)
				r.Post("/", h.AddReceiver)
				r.Get("/{id}", h.GetReceiver)
				r.Put("/{id}", h.EditReceiver)
			})

			r.Route("/items", func(r chi.Router) {
				r.Get("/", h.ListItems)
				r.Post("/", h.AddItem)
				r.Get("/parcel/{parcelId}", h.ItemsByParcel)
				r.Get("/{id}", h.GetItem)
				r.Put("/{id}", h.EditItem)
			})

			r.Get("/stats/courier", h.CourierStats)
		})
	})

	return r
}
