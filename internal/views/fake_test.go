package views

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/orderhub/order-admin/internal/entities"
)

// fakeGateway is a scripted gateway. Unset functions fail the flow
// loudly by returning a zero value, calls records every operation in
// order.
type fakeGateway struct {
	calls []string

	listFn           func(page, pageSize int, search string) (entities.PagedOrders, error)
	getFn            func(id string, maxAttempts int) (entities.Order, error)
	createAndFetchFn func(req entities.CreateOrderRequest) (entities.Order, error)
	updateFn         func(id string, req entities.UpdateOrderRequest) error
	updateStatusFn   func(id string, code int) error
	removeFn         func(id string) error
}

func (f *fakeGateway) List(_ context.Context, page, pageSize int, search string) (entities.PagedOrders, error) {
	f.calls = append(f.calls, "list")
	if f.listFn == nil {
		return entities.PagedOrders{}, nil
	}
	return f.listFn(page, pageSize, search)
}

func (f *fakeGateway) GetByID(_ context.Context, id string, maxAttempts int) (entities.Order, error) {
	f.calls = append(f.calls, "get")
	if f.getFn == nil {
		return entities.Order{}, nil
	}
	return f.getFn(id, maxAttempts)
}

func (f *fakeGateway) CreateAndFetch(_ context.Context, req entities.CreateOrderRequest) (entities.Order, error) {
	f.calls = append(f.calls, "createAndFetch")
	if f.createAndFetchFn == nil {
		return entities.Order{}, nil
	}
	return f.createAndFetchFn(req)
}

func (f *fakeGateway) Update(_ context.Context, id string, req entities.UpdateOrderRequest) error {
	f.calls = append(f.calls, "update")
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(id, req)
}

func (f *fakeGateway) UpdateStatus(_ context.Context, id string, code int) error {
	f.calls = append(f.calls, "updateStatus")
	if f.updateStatusFn == nil {
		return nil
	}
	return f.updateStatusFn(id, code)
}

func (f *fakeGateway) Remove(_ context.Context, id string) error {
	f.calls = append(f.calls, "remove")
	if f.removeFn == nil {
		return nil
	}
	return f.removeFn(id)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordWaits swaps a view's wait for one that records delays without
// sleeping.
func recordWaits(waits *[]time.Duration) func(ctx context.Context, d time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}
