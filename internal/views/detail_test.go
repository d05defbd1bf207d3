package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/order-admin/internal/entities"
)

func loadedDetailView(t *testing.T, gw *fakeGateway, order entities.Order) *DetailView {
	t.Helper()
	gw.getFn = func(id string, maxAttempts int) (entities.Order, error) {
		assert.Equal(t, 10, maxAttempts)
		return order, nil
	}

	v := NewDetailView(testLogger(), gw, order.ID, 1500*time.Millisecond)
	v.Load(context.Background())
	require.NotNil(t, v.Order)
	gw.calls = nil
	return v
}

func TestDetailView_Load(t *testing.T) {
	order := entities.Order{ID: "o-1", Status: entities.StatusPaid}
	gw := &fakeGateway{}

	v := loadedDetailView(t, gw, order)

	assert.Equal(t, order, *v.Order)
	assert.Equal(t, entities.StatusPaid, v.NewStatus)
	assert.Empty(t, v.Err)
}

func TestDetailView_LoadFailure(t *testing.T) {
	gw := &fakeGateway{
		getFn: func(id string, maxAttempts int) (entities.Order, error) {
			return entities.Order{}, errors.New("order not found")
		},
	}

	v := NewDetailView(testLogger(), gw, "o-1", 0)
	v.Load(context.Background())

	assert.Nil(t, v.Order)
	assert.Equal(t, "order not found", v.Err)
}

func TestDetailView_UpdateStatus_SameStatusSkipsRequest(t *testing.T) {
	gw := &fakeGateway{}
	v := loadedDetailView(t, gw, entities.Order{ID: "o-1", Status: entities.StatusPending})

	v.OpenStatusModal()
	v.NewStatus = entities.StatusPending
	v.UpdateStatus(context.Background())

	assert.Empty(t, gw.calls, "no network call for an unchanged status")
	assert.False(t, v.StatusModalOpen)
}

func TestDetailView_UpdateStatus_WaitsForReadModelThenReloads(t *testing.T) {
	gw := &fakeGateway{}
	var gotCode int
	gw.updateStatusFn = func(id string, code int) error {
		gotCode = code
		return nil
	}

	v := loadedDetailView(t, gw, entities.Order{ID: "o-1", Status: entities.StatusPending})

	var waits []time.Duration
	v.wait = recordWaits(&waits)

	v.OpenStatusModal()
	v.NewStatus = entities.StatusShipped
	v.UpdateStatus(context.Background())

	assert.Equal(t, 3, gotCode)
	assert.Equal(t, []string{"updateStatus", "get"}, gw.calls, "refetch happens after the update")
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, waits)
	assert.False(t, v.StatusModalOpen)
	assert.Empty(t, v.StatusErr)
}

func TestDetailView_UpdateStatus_FailureStaysInModal(t *testing.T) {
	gw := &fakeGateway{
		updateStatusFn: func(id string, code int) error {
			return errors.New("server error, try again later")
		},
	}

	v := loadedDetailView(t, gw, entities.Order{ID: "o-1", Status: entities.StatusPending})
	v.OpenStatusModal()
	v.NewStatus = entities.StatusPaid
	v.UpdateStatus(context.Background())

	assert.Equal(t, "server error, try again later", v.StatusErr)
	assert.True(t, v.StatusModalOpen)
	assert.False(t, v.UpdatingStatus)
	assert.Equal(t, []string{"updateStatus"}, gw.calls, "no reload after a failed update")
}

func TestDetailView_Delete(t *testing.T) {
	t.Run("success navigates back to the list", func(t *testing.T) {
		gw := &fakeGateway{}
		v := loadedDetailView(t, gw, entities.Order{ID: "o-1"})

		v.OpenDeleteModal()
		assert.True(t, v.Delete(context.Background()))
		assert.False(t, v.DeleteModalOpen)
	})

	t.Run("failure keeps the modal open with the error inline", func(t *testing.T) {
		gw := &fakeGateway{
			removeFn: func(id string) error { return errors.New("server error, try again later") },
		}
		v := loadedDetailView(t, gw, entities.Order{ID: "o-1", Status: entities.StatusPaid})

		v.OpenDeleteModal()
		assert.False(t, v.Delete(context.Background()))
		assert.True(t, v.DeleteModalOpen)
		assert.Equal(t, "server error, try again later", v.DeleteErr)
		assert.Equal(t, entities.StatusPaid, v.Order.Status, "loaded order is untouched")
	})
}

func TestDetailView_SubFlowsAreIndependent(t *testing.T) {
	gw := &fakeGateway{
		removeFn: func(id string) error { return errors.New("delete failed") },
	}
	v := loadedDetailView(t, gw, entities.Order{ID: "o-1", Status: entities.StatusPending})

	v.OpenDeleteModal()
	v.Delete(context.Background())
	require.NotEmpty(t, v.DeleteErr)

	// the status flow still works after the delete flow failed
	var waits []time.Duration
	v.wait = recordWaits(&waits)
	v.OpenStatusModal()
	v.NewStatus = entities.StatusCancelled
	v.UpdateStatus(context.Background())

	assert.Empty(t, v.StatusErr)
	assert.False(t, v.StatusModalOpen)
}
