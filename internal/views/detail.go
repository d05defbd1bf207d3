package views

import (
	"context"
	"log/slog"
	"time"

	"github.com/orderhub/order-admin/internal/entities"
	"github.com/orderhub/order-admin/pkg/utils"
)

// detailLoadAttempts tolerates read-model lag right after navigating
// here from a create or edit flow.
const detailLoadAttempts = 10

type DetailGateway interface {
	GetByID(ctx context.Context, id string, maxAttempts int) (entities.Order, error)
	UpdateStatus(ctx context.Context, id string, statusCode int) error
	Remove(ctx context.Context, id string) error
}

// DetailView loads one order and owns two independent sub-flows, a
// status-change modal and a delete-confirmation modal. A failure in one
// never blocks the other.
type DetailView struct {
	logger *slog.Logger
	gw     DetailGateway

	// reconcileDelay is how long the view waits after a status update
	// before refetching, giving the read model time to catch up.
	reconcileDelay time.Duration
	wait           func(ctx context.Context, d time.Duration) error

	OrderID string
	Order   *entities.Order
	Loading bool
	Err     string

	StatusModalOpen bool
	NewStatus       entities.Status
	UpdatingStatus  bool
	StatusErr       string

	DeleteModalOpen bool
	Deleting        bool
	DeleteErr       string
}

func NewDetailView(logger *slog.Logger, gw DetailGateway, orderID string, reconcileDelay time.Duration) *DetailView {
	return &DetailView{
		logger:         logger.With(slog.String("view", "order-detail"), slog.String("order_id", orderID)),
		gw:             gw,
		reconcileDelay: reconcileDelay,
		wait:           utils.Wait,
		OrderID:        orderID,
		NewStatus:      entities.StatusPending,
	}
}

// AvailableStatuses lists the choices offered by the status modal.
func (v *DetailView) AvailableStatuses() []entities.Status {
	return entities.Statuses
}

func (v *DetailView) Load(ctx context.Context) {
	v.Loading = true
	v.Err = ""

	order, err := v.gw.GetByID(ctx, v.OrderID, detailLoadAttempts)
	v.Loading = false
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to load order", slog.Any("error", err))
		v.Err = err.Error()
		return
	}

	v.Order = &order
	v.NewStatus = order.Status
}

func (v *DetailView) OpenStatusModal() {
	if v.Order == nil {
		return
	}
	v.NewStatus = v.Order.Status
	v.StatusModalOpen = true
	v.StatusErr = ""
}

func (v *DetailView) CloseStatusModal() {
	v.StatusModalOpen = false
	v.StatusErr = ""
}

// UpdateStatus submits the status chosen in the modal. Picking the
// current status closes the modal without a request. After a
// successful update the view waits for the read model and reloads, the
// response alone is not trusted.
func (v *DetailView) UpdateStatus(ctx context.Context) {
	if v.Order == nil || v.NewStatus == v.Order.Status {
		v.CloseStatusModal()
		return
	}
	if v.UpdatingStatus {
		return
	}

	v.UpdatingStatus = true
	v.StatusErr = ""

	err := v.gw.UpdateStatus(ctx, v.OrderID, v.NewStatus.Code())
	v.UpdatingStatus = false
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to update status", slog.Any("error", err))
		v.StatusErr = err.Error()
		return
	}

	v.CloseStatusModal()
	if err := v.wait(ctx, v.reconcileDelay); err != nil {
		return
	}
	v.Load(ctx)
}

func (v *DetailView) OpenDeleteModal() {
	v.DeleteModalOpen = true
	v.DeleteErr = ""
}

func (v *DetailView) CloseDeleteModal() {
	v.DeleteModalOpen = false
	v.DeleteErr = ""
}

// Delete removes the order. It reports whether the caller should
// navigate back to the list. On failure the error shows inside the
// still-open modal and the loaded order is untouched.
func (v *DetailView) Delete(ctx context.Context) bool {
	if v.Deleting {
		return false
	}

	v.Deleting = true
	v.DeleteErr = ""

	err := v.gw.Remove(ctx, v.OrderID)
	v.Deleting = false
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to delete order", slog.Any("error", err))
		v.DeleteErr = err.Error()
		return false
	}

	v.CloseDeleteModal()
	return true
}
