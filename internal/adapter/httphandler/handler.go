package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/productlist/internal/core/domain"
	"github.com/niksmo/productlist/internal/core/port"
)

// GET    v1/products                (200 OK)
// PUT    v1/products/search JSON    (200 OK, 400 Bad request)
// DELETE v1/products/search         (200 OK)
// POST   v1/products/refresh        (200 OK)
// POST   v1/products/retry          (200 OK)
// POST   v1/navigation JSON         (200 OK, 400 Bad request, 404 Not found)

type ProductsHandler struct {
	controller port.ProductListController
}

func RegisterProducts(mux *http.ServeMux, c port.ProductListController) {
	h := ProductsHandler{c}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("PUT /v1/products/search", h.PutSearch)
	mux.HandleFunc("DELETE /v1/products/search", h.DeleteSearch)
	mux.HandleFunc("POST /v1/products/refresh", h.PostRefresh)
	mux.HandleFunc("POST /v1/products/retry", h.PostRetry)
	mux.HandleFunc("POST /v1/navigation", h.PostNavigation)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	writeJSON(w, op, http.StatusOK, fromDomainView(h.controller.View()))
}

func (h ProductsHandler) PutSearch(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PutSearch"
	log := slog.With("op", op)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.controller.SetSearchText(req.Text)
	writeJSON(w, op, http.StatusOK, fromDomainView(h.controller.View()))
}

func (h ProductsHandler) DeleteSearch(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteSearch"
	h.controller.ClearSearch()
	writeJSON(w, op, http.StatusOK, fromDomainView(h.controller.View()))
}

// PostRefresh reloads the list and responds when the load is over. The
// load is not tied to the client connection.
func (h ProductsHandler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostRefresh"
	res := h.controller.Refresh(context.WithoutCancel(r.Context()))
	slog.Info("refreshed", "op", op, "source", res.Source, "nProducts", res.Count)
	writeJSON(w, op, http.StatusOK, fromDomainView(h.controller.View()))
}

func (h ProductsHandler) PostRetry(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostRetry"
	res := h.controller.Retry(context.WithoutCancel(r.Context()))
	slog.Info("retried", "op", op, "source", res.Source, "nProducts", res.Count)
	writeJSON(w, op, http.StatusOK, fromDomainView(h.controller.View()))
}

func (h ProductsHandler) PostNavigation(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostNavigation"
	log := slog.With("op", op)

	var req NavigationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	dest, err := domain.ParseDestination(req.Destination)
	if err != nil {
		http.Error(w, "unknown destination", http.StatusNotFound)
		log.Warn("unknown destination", "destination", req.Destination)
		return
	}

	route := domain.Route{Destination: dest}
	if dest == domain.DestinationProductDetail {
		route.Params = map[string]string{domain.ParamProductID: req.ProductID}
	}

	err = h.controller.Open(r.Context(), route)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRoute) {
			http.Error(w, "invalid route", http.StatusBadRequest)
			log.Warn("invalid route", "err", err)
			return
		}
		http.Error(w, "navigation failed", http.StatusServiceUnavailable)
		log.Error("navigation failed", "err", err)
		return
	}

	writeJSON(w, op, http.StatusOK, Route{
		Destination: string(route.Destination),
		Params:      route.Params,
	})
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
