package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/orderhub/order-admin/internal/entities"
	"github.com/orderhub/order-admin/internal/gateway"
	"github.com/orderhub/order-admin/pkg/utils"
)

// editLoadAttempts is lower than the detail view's: an order being
// edited has existed for a while, the read model rarely lags here.
const editLoadAttempts = 5

// DefaultCustomerID is the fixed customer every new order is created
// for. The admin UI has no customer management.
const DefaultCustomerID = "11111111-1111-1111-1111-111111111111"

type FormGateway interface {
	GetByID(ctx context.Context, id string, maxAttempts int) (entities.Order, error)
	CreateAndFetch(ctx context.Context, req entities.CreateOrderRequest) (entities.Order, error)
	Update(ctx context.Context, id string, req entities.UpdateOrderRequest) error
}

type ProductCatalog interface {
	List() []entities.Product
}

// FormRow is one draft line item. Quantity stays a float until
// submission so a fractional input can be rejected with its own
// message instead of being silently truncated.
type FormRow struct {
	ProductID   string
	Quantity    float64
	ProductName string
	UnitPrice   decimal.Decimal
}

// FormView collects line items for a create or edit submission. All
// draft state lives here and is discarded when the caller navigates
// away.
type FormView struct {
	logger  *slog.Logger
	gw      FormGateway
	catalog ProductCatalog

	reconcileDelay time.Duration
	wait           func(ctx context.Context, d time.Duration) error

	EditMode      bool
	OrderID       string
	CustomerID    string
	CurrentStatus entities.Status

	Products []entities.Product
	Rows     []FormRow

	Loading         bool
	LoadingProducts bool
	Submitting      bool
	Err             string
	Errs            []string
}

func NewFormView(logger *slog.Logger, gw FormGateway, catalog ProductCatalog, reconcileDelay time.Duration) *FormView {
	return &FormView{
		logger:         logger.With(slog.String("view", "order-form")),
		gw:             gw,
		catalog:        catalog,
		reconcileDelay: reconcileDelay,
		wait:           utils.Wait,
		CustomerID:     DefaultCustomerID,
		CurrentStatus:  entities.StatusPending,
	}
}

// NewEditFormView prepares the form for editing an existing order.
func NewEditFormView(logger *slog.Logger, gw FormGateway, catalog ProductCatalog, orderID string, reconcileDelay time.Duration) *FormView {
	v := NewFormView(logger, gw, catalog, reconcileDelay)
	v.EditMode = true
	v.OrderID = orderID
	return v
}

// Load fetches the catalog and, in edit mode, the order being edited.
// The two loads run concurrently. Create mode seeds a single row so
// the form never starts empty.
func (v *FormView) Load(ctx context.Context) {
	v.LoadingProducts = true
	v.Loading = v.EditMode
	v.Err = ""

	var order entities.Order
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v.Products = v.catalog.List()
		return nil
	})
	if v.EditMode {
		g.Go(func() error {
			var err error
			order, err = v.gw.GetByID(gctx, v.OrderID, editLoadAttempts)
			return err
		})
	}
	err := g.Wait()
	v.LoadingProducts = false
	v.Loading = false

	if err != nil {
		v.logger.ErrorContext(ctx, "failed to load order form", slog.Any("error", err))
		v.Err = err.Error()
		return
	}

	if v.EditMode {
		v.CurrentStatus = order.Status
		v.CustomerID = order.CustomerID
		v.Rows = v.Rows[:0]
		for _, item := range order.Items {
			v.Rows = append(v.Rows, FormRow{
				ProductID:   item.ProductID,
				Quantity:    float64(item.Quantity),
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
			})
		}
	}
	if len(v.Rows) == 0 {
		v.AddRow()
	}
}

// AddRow appends a new line item, defaulted to the first catalog
// product when one exists.
func (v *FormView) AddRow() {
	if len(v.Products) > 0 {
		first := v.Products[0]
		v.Rows = append(v.Rows, FormRow{
			ProductID:   first.ID,
			Quantity:    1,
			ProductName: first.Name,
			UnitPrice:   first.Price,
		})
		return
	}
	v.Rows = append(v.Rows, FormRow{Quantity: 1})
}

// RemoveRow deletes a line item. The form always keeps at least one
// row.
func (v *FormView) RemoveRow(index int) {
	if len(v.Rows) <= 1 || index < 0 || index >= len(v.Rows) {
		return
	}
	v.Rows = append(v.Rows[:index], v.Rows[index+1:]...)
}

// SelectProduct overwrites a row's denormalized name and price from
// the catalog entry chosen for it.
func (v *FormView) SelectProduct(index int) {
	if index < 0 || index >= len(v.Rows) {
		return
	}
	row := &v.Rows[index]
	for _, p := range v.Products {
		if p.ID == row.ProductID {
			row.ProductName = p.Name
			row.UnitPrice = p.Price
			return
		}
	}
}

// PreviewTotal is a display aid only, the server computes the
// authoritative total.
func (v *FormView) PreviewTotal() decimal.Decimal {
	total := decimal.Zero
	for _, row := range v.Rows {
		total = total.Add(row.UnitPrice.Mul(decimal.NewFromFloat(row.Quantity)))
	}
	return total
}

// Validate gates submission. All violations are collected and reported
// together, each with its 1-based row index.
func (v *FormView) Validate() bool {
	v.Errs = v.Errs[:0]

	if len(v.Rows) == 0 {
		v.Errs = append(v.Errs, "add at least one item to the order")
		return false
	}

	for i, row := range v.Rows {
		if row.ProductID == "" {
			v.Errs = append(v.Errs, fmt.Sprintf("item %d: select a product", i+1))
		}
		if row.Quantity < 1 {
			v.Errs = append(v.Errs, fmt.Sprintf("item %d: quantity must be greater than zero", i+1))
		}
		if row.Quantity != math.Trunc(row.Quantity) {
			v.Errs = append(v.Errs, fmt.Sprintf("item %d: quantity must be a whole number", i+1))
		}
	}

	return len(v.Errs) == 0
}

// Submit validates and sends the draft. It returns the order id to
// navigate to and whether navigation should happen. On failure the
// view keeps all entered state so the user can correct and resubmit.
func (v *FormView) Submit(ctx context.Context) (string, bool) {
	if v.Submitting {
		return "", false
	}
	if !v.Validate() {
		return "", false
	}

	v.Submitting = true
	v.Err = ""

	items := make([]entities.OrderItemRequest, 0, len(v.Rows))
	for _, row := range v.Rows {
		items = append(items, entities.OrderItemRequest{
			ProductID: row.ProductID,
			Quantity:  int(row.Quantity),
		})
	}

	if v.EditMode {
		return v.submitUpdate(ctx, items)
	}
	return v.submitCreate(ctx, items)
}

func (v *FormView) submitCreate(ctx context.Context, items []entities.OrderItemRequest) (string, bool) {
	order, err := v.gw.CreateAndFetch(ctx, entities.CreateOrderRequest{
		CustomerID: v.CustomerID,
		Items:      items,
	})
	v.Submitting = false
	if err != nil {
		v.fail(ctx, err)
		return "", false
	}
	return order.ID, true
}

// submitUpdate replaces the full item list, keeping the current
// status. The post-update fetch is best effort: navigation proceeds
// even when the read model has not caught up yet.
func (v *FormView) submitUpdate(ctx context.Context, items []entities.OrderItemRequest) (string, bool) {
	status := v.CurrentStatus.Code()
	err := v.gw.Update(ctx, v.OrderID, entities.UpdateOrderRequest{
		OrderID:      v.OrderID,
		NewStatus:    &status,
		ReplaceItems: items,
	})
	v.Submitting = false
	if err != nil {
		v.fail(ctx, err)
		return "", false
	}

	if err := v.wait(ctx, v.reconcileDelay); err != nil {
		return v.OrderID, true
	}
	if _, err := v.gw.GetByID(ctx, v.OrderID, detailLoadAttempts); err != nil {
		v.logger.WarnContext(ctx, "read model not synced after update, navigating anyway",
			slog.String("order_id", v.OrderID), slog.Any("error", err))
	}
	return v.OrderID, true
}

func (v *FormView) fail(ctx context.Context, err error) {
	v.logger.ErrorContext(ctx, "failed to save order", slog.Any("error", err))

	// Field-level validation messages from the API are shown verbatim,
	// anything else collapses to the single gateway message.
	var re *gateway.RequestError
	if errors.As(err, &re) && re.Status == http.StatusBadRequest && len(re.Errors) > 0 {
		v.Errs = re.Errors
		v.Err = "correct the errors below"
		return
	}
	v.Err = err.Error()
}
