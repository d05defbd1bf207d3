package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/order-admin/internal/entities"
)

func TestListView_Load(t *testing.T) {
	gw := &fakeGateway{
		listFn: func(page, pageSize int, search string) (entities.PagedOrders, error) {
			assert.Equal(t, 1, page)
			assert.Equal(t, 10, pageSize)
			return entities.PagedOrders{
				Items:      []entities.Order{{ID: "o-1"}, {ID: "o-2"}},
				Page:       1,
				PageSize:   10,
				TotalCount: 25,
				TotalPages: 3,
			}, nil
		},
	}

	v := NewListView(testLogger(), gw)
	v.Load(context.Background())

	assert.False(t, v.Loading)
	assert.Empty(t, v.Err)
	assert.Len(t, v.Orders, 2)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 25, v.TotalCount)
}

func TestListView_LoadFailureKeepsOrders(t *testing.T) {
	fail := false
	gw := &fakeGateway{
		listFn: func(page, pageSize int, search string) (entities.PagedOrders, error) {
			if fail {
				return entities.PagedOrders{}, errors.New("server error, try again later")
			}
			return entities.PagedOrders{
				Items: []entities.Order{{ID: "o-1"}}, Page: 1, PageSize: 10, TotalCount: 1, TotalPages: 1,
			}, nil
		},
	}

	v := NewListView(testLogger(), gw)
	v.Load(context.Background())
	require.Len(t, v.Orders, 1)

	fail = true
	v.Load(context.Background())

	assert.Equal(t, "server error, try again later", v.Err)
	assert.Len(t, v.Orders, 1, "previously rendered orders stay put")
}

func TestListView_ApplyFiltersResetsPageAndTrims(t *testing.T) {
	var gotSearch string
	gw := &fakeGateway{
		listFn: func(page, pageSize int, search string) (entities.PagedOrders, error) {
			gotSearch = search
			assert.Equal(t, 1, page)
			return entities.PagedOrders{Page: 1, PageSize: 10}, nil
		},
	}

	v := NewListView(testLogger(), gw)
	v.Page = 4
	v.Search = "  customer-7  "
	v.ApplyFilters(context.Background())

	assert.Equal(t, 1, v.Page)
	assert.Equal(t, "customer-7", gotSearch)
}

func TestListView_WhitespaceSearchIsNoFilter(t *testing.T) {
	var gotSearch string
	gw := &fakeGateway{
		listFn: func(page, pageSize int, search string) (entities.PagedOrders, error) {
			gotSearch = search
			return entities.PagedOrders{}, nil
		},
	}

	v := NewListView(testLogger(), gw)
	v.Search = "   "
	v.ApplyFilters(context.Background())

	assert.Empty(t, gotSearch)
}

func TestListView_ClearFilters(t *testing.T) {
	gw := &fakeGateway{}

	v := NewListView(testLogger(), gw)
	v.Page = 3
	v.Search = "abc"
	v.ClearFilters(context.Background())

	assert.Empty(t, v.Search)
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, []string{"list"}, gw.calls)
}

func TestListView_GoToPage(t *testing.T) {
	gw := &fakeGateway{}

	v := NewListView(testLogger(), gw)
	v.TotalPages = 5
	v.Page = 2

	t.Run("out of range is a no-op", func(t *testing.T) {
		v.GoToPage(context.Background(), 0)
		v.GoToPage(context.Background(), 6)
		assert.Equal(t, 2, v.Page)
		assert.Empty(t, gw.calls)
	})

	t.Run("valid page refetches", func(t *testing.T) {
		v.GoToPage(context.Background(), 5)
		assert.Equal(t, 5, v.Page)
		assert.Equal(t, []string{"list"}, gw.calls)
	})
}

func TestListView_Pages(t *testing.T) {
	testCases := []struct {
		name       string
		totalPages int
		current    int
		want       []int
	}{
		{"fewer pages than the window", 3, 1, []int{1, 2, 3}},
		{"window centered mid-range", 20, 10, []int{8, 9, 10, 11, 12}},
		{"clamped at the start", 20, 1, []int{1, 2, 3, 4, 5}},
		{"clamped near the start", 20, 2, []int{1, 2, 3, 4, 5}},
		{"clamped at the end", 20, 20, []int{16, 17, 18, 19, 20}},
		{"clamped near the end", 20, 19, []int{16, 17, 18, 19, 20}},
		{"single page", 1, 1, []int{1}},
		{"no pages", 0, 1, []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewListView(testLogger(), &fakeGateway{})
			v.TotalPages = tc.totalPages
			v.Page = tc.current
			assert.Equal(t, tc.want, v.Pages())
		})
	}
}
