package web

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/orderhub/order-admin/internal/entities"
	"github.com/orderhub/order-admin/internal/views"
)

// Gateway is everything the pages need from the order API client.
type Gateway interface {
	views.OrderLister
	views.DetailGateway
	views.FormGateway
}

type Handler struct {
	logger  *slog.Logger
	gw      Gateway
	catalog views.ProductCatalog

	reconcileDelay time.Duration

	templates *templateSet
}

func NewHandler(logger *slog.Logger, gw Gateway, catalog views.ProductCatalog, reconcileDelay time.Duration) (*Handler, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		logger:         logger.With(slog.String("handler", "web")),
		gw:             gw,
		catalog:        catalog,
		reconcileDelay: reconcileDelay,
		templates:      templates,
	}, nil
}

func (h *Handler) Init(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/orders", http.StatusFound)
	})
	r.Get("/orders", h.listOrders)
	r.Get("/orders/new", h.newOrderForm)
	r.Post("/orders/new", h.submitOrderForm)
	r.Get("/orders/{id}", h.orderDetail)
	r.Post("/orders/{id}/status", h.updateStatus)
	r.Post("/orders/{id}/delete", h.deleteOrder)
	r.Get("/orders/{id}/edit", h.editOrderForm)
	r.Post("/orders/{id}/edit", h.submitOrderForm)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/orders", http.StatusFound)
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	v := views.NewListView(h.logger, h.gw)
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		v.Page = page
	}
	v.Search = r.URL.Query().Get("search")
	v.Load(r.Context())

	h.render(w, "list.html", v)
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	v := h.detailView(r.Context(), chi.URLParam(r, "id"))
	switch r.URL.Query().Get("modal") {
	case "status":
		v.OpenStatusModal()
	case "delete":
		v.OpenDeleteModal()
	}
	h.render(w, "detail.html", v)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	v := h.detailView(r.Context(), chi.URLParam(r, "id"))
	if v.Order == nil {
		h.render(w, "detail.html", v)
		return
	}

	v.OpenStatusModal()
	if status := entities.Status(r.FormValue("status")); status.Valid() {
		v.NewStatus = status
	}
	v.UpdateStatus(r.Context())
	if v.StatusErr != "" {
		h.render(w, "detail.html", v)
		return
	}
	http.Redirect(w, r, "/orders/"+v.OrderID, http.StatusSeeOther)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v := views.NewDetailView(h.logger, h.gw, id, h.reconcileDelay)
	v.OpenDeleteModal()
	if v.Delete(r.Context()) {
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	// The confirmation modal stays open with the error inline. The
	// reload refreshes the order underneath it, so the failure message
	// has to survive the round trip.
	deleteErr := v.DeleteErr
	v.Load(r.Context())
	v.DeleteModalOpen = true
	v.DeleteErr = deleteErr
	h.render(w, "detail.html", v)
}

func (h *Handler) newOrderForm(w http.ResponseWriter, r *http.Request) {
	v := views.NewFormView(h.logger, h.gw, h.catalog, h.reconcileDelay)
	v.Load(r.Context())
	h.render(w, "form.html", v)
}

func (h *Handler) editOrderForm(w http.ResponseWriter, r *http.Request) {
	v := views.NewEditFormView(h.logger, h.gw, h.catalog, chi.URLParam(r, "id"), h.reconcileDelay)
	v.Load(r.Context())
	h.render(w, "form.html", v)
}

// submitOrderForm handles every form POST: row mutations re-render the
// draft, submit sends it and navigates to the resulting order.
func (h *Handler) submitOrderForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	v := h.formViewFromRequest(r)

	action := r.FormValue("action")
	switch {
	case action == "add":
		v.AddRow()
	case strings.HasPrefix(action, "remove:"):
		if i, err := strconv.Atoi(strings.TrimPrefix(action, "remove:")); err == nil {
			v.RemoveRow(i)
		}
	default:
		if id, ok := v.Submit(r.Context()); ok {
			http.Redirect(w, r, "/orders/"+id, http.StatusSeeOther)
			return
		}
	}

	h.render(w, "form.html", v)
}

func (h *Handler) detailView(ctx context.Context, id string) *views.DetailView {
	v := views.NewDetailView(h.logger, h.gw, id, h.reconcileDelay)
	v.Load(ctx)
	return v
}

// formViewFromRequest rebuilds the draft rows posted by the form. The
// denormalized name and price of every row are re-derived from the
// catalog so a changed product selection takes effect.
func (h *Handler) formViewFromRequest(r *http.Request) *views.FormView {
	var v *views.FormView
	if id := chi.URLParam(r, "id"); id != "" {
		v = views.NewEditFormView(h.logger, h.gw, h.catalog, id, h.reconcileDelay)
	} else {
		v = views.NewFormView(h.logger, h.gw, h.catalog, h.reconcileDelay)
	}
	v.Products = h.catalog.List()

	if customerID := r.FormValue("customerId"); customerID != "" {
		v.CustomerID = customerID
	}
	if status := entities.Status(r.FormValue("currentStatus")); status.Valid() {
		v.CurrentStatus = status
	}

	productIDs := r.Form["productId"]
	quantities := r.Form["quantity"]
	names := r.Form["productName"]
	prices := r.Form["unitPrice"]
	for i, productID := range productIDs {
		row := views.FormRow{ProductID: productID}
		if i < len(quantities) {
			row.Quantity, _ = strconv.ParseFloat(strings.TrimSpace(quantities[i]), 64)
		}
		// posted denormalized values survive for products the static
		// catalog no longer knows, a catalog match overwrites them
		if i < len(names) {
			row.ProductName = names[i]
		}
		if i < len(prices) {
			if price, err := decimal.NewFromString(prices[i]); err == nil {
				row.UnitPrice = price
			}
		}
		v.Rows = append(v.Rows, row)
	}
	for i := range v.Rows {
		v.SelectProduct(i)
	}
	return v
}

func (h *Handler) render(w http.ResponseWriter, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.execute(&buf, page, data); err != nil {
		h.logger.Error("failed to render page", slog.String("page", page), slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
