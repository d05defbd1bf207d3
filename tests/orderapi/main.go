// Command orderapi is an in-memory stand-in for the order management
// API used during local development. Writes land in a write store and
// are copied to a separate read store only after an artificial lag, so
// the admin app's retry and reconciliation paths can be exercised
// without the real backend.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/order-admin/internal/catalog"
	"github.com/orderhub/order-admin/internal/entities"
	"github.com/orderhub/order-admin/pkg/utils"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	lag := 2 * time.Second
	if v, err := time.ParseDuration(os.Getenv("SYNC_LAG")); err == nil {
		lag = v
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	srv := &server{
		logger:  logger,
		catalog: catalog.New(),
		lag:     lag,
		writes:  make(map[string]entities.Order),
		reads:   make(map[string]entities.Order),
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", srv.list)
		r.Post("/", srv.create)
		r.Get("/{id}", srv.get)
		r.Put("/{id}", srv.update)
		r.Delete("/{id}", srv.remove)
	})

	logger.Info("orderapi stub listening", slog.String("port", port), slog.Duration("sync_lag", lag))
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

type server struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	lag     time.Duration

	mu     sync.Mutex
	writes map[string]entities.Order
	reads  map[string]entities.Order
}

// syncLater copies an order from the write store to the read store
// after the configured lag, emulating asynchronous read-model sync.
func (s *server) syncLater(id string) {
	time.AfterFunc(s.lag, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if order, ok := s.writes[id]; ok {
			s.reads[id] = order
			s.logger.Info("read model synced", slog.String("order_id", id))
		}
	})
}

func (s *server) buildItems(reqs []entities.OrderItemRequest) ([]entities.OrderItem, decimal.Decimal, []string) {
	var errs []string
	items := make([]entities.OrderItem, 0, len(reqs))
	total := decimal.Zero

	if len(reqs) == 0 {
		errs = append(errs, "order must contain at least one item")
	}
	for i, req := range reqs {
		product, ok := s.catalog.GetByID(req.ProductID)
		if !ok {
			errs = append(errs, fmt.Sprintf("item %d: unknown product", i+1))
			continue
		}
		if req.Quantity < 1 {
			errs = append(errs, fmt.Sprintf("item %d: quantity must be positive", i+1))
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))
		items = append(items, entities.OrderItem{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
			TotalPrice:  lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return items, total, errs
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, total, errs := s.buildItems(req.Items)
	if len(errs) > 0 {
		utils.WriteError(w, http.StatusBadRequest, errs...)
		return
	}

	order := entities.Order{
		ID:          uuid.NewString(),
		CustomerID:  req.CustomerID,
		OrderDate:   time.Now().UTC(),
		TotalAmount: total,
		Status:      entities.StatusPending,
		Items:       items,
	}

	s.mu.Lock()
	s.writes[order.ID] = order
	s.mu.Unlock()
	s.syncLater(order.ID)

	utils.WriteJSON(w, map[string]string{"id": order.ID}, http.StatusCreated)
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	order, ok := s.reads[id]
	s.mu.Unlock()

	if !ok {
		utils.WriteError(w, http.StatusNotFound, "order not found")
		return
	}
	utils.WriteJSON(w, order, http.StatusOK)
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 10
	}
	search := strings.ToLower(r.URL.Query().Get("search"))

	s.mu.Lock()
	all := make([]entities.Order, 0, len(s.reads))
	for _, order := range s.reads {
		if search != "" &&
			!strings.Contains(strings.ToLower(order.ID), search) &&
			!strings.Contains(strings.ToLower(order.CustomerID), search) {
			continue
		}
		// list summaries carry no items
		order.Items = nil
		all = append(all, order)
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })

	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := min(start+pageSize, len(all))

	utils.WriteJSON(w, entities.PagedOrders{
		Items:      all[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(all),
	}, http.StatusOK)
}

func (s *server) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req entities.UpdateOrderRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	order, ok := s.writes[id]
	s.mu.Unlock()
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "order not found")
		return
	}

	if req.NewStatus != nil {
		status, err := entities.StatusFromCode(*req.NewStatus)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		order.Status = status
	}
	if req.ReplaceItems != nil {
		items, total, errs := s.buildItems(req.ReplaceItems)
		if len(errs) > 0 {
			utils.WriteError(w, http.StatusBadRequest, errs...)
			return
		}
		order.Items = items
		order.TotalAmount = total
	}

	s.mu.Lock()
	s.writes[id] = order
	s.mu.Unlock()
	// the read side keeps serving the old version until the sync fires
	s.syncLater(id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, ok := s.writes[id]
	delete(s.writes, id)
	delete(s.reads, id)
	s.mu.Unlock()

	if !ok {
		utils.WriteError(w, http.StatusNotFound, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
