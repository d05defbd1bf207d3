package views

import (
	"context"
	"log/slog"
	"strings"

	"github.com/orderhub/order-admin/internal/entities"
)

const defaultPageSize = 10

// maxVisiblePages is the width of the pagination window.
const maxVisiblePages = 5

type OrderLister interface {
	List(ctx context.Context, page, pageSize int, search string) (entities.PagedOrders, error)
}

// ListView drives the paginated order list. It owns its pagination and
// filter state, nothing is shared with other views.
type ListView struct {
	logger *slog.Logger
	gw     OrderLister

	Page     int
	PageSize int
	Search   string

	Orders     []entities.Order
	TotalPages int
	TotalCount int

	Loading bool
	Err     string
}

func NewListView(logger *slog.Logger, gw OrderLister) *ListView {
	return &ListView{
		logger:   logger.With(slog.String("view", "order-list")),
		gw:       gw,
		Page:     1,
		PageSize: defaultPageSize,
	}
}

// Load fetches the current page. On failure the previously rendered
// orders are left untouched and only Err is set.
func (v *ListView) Load(ctx context.Context) {
	v.Loading = true
	v.Err = ""

	result, err := v.gw.List(ctx, v.Page, v.PageSize, strings.TrimSpace(v.Search))
	v.Loading = false
	if err != nil {
		v.logger.ErrorContext(ctx, "failed to load orders", slog.Any("error", err))
		v.Err = err.Error()
		return
	}

	v.Orders = result.Items
	v.TotalPages = result.TotalPages
	v.TotalCount = result.TotalCount
}

// ApplyFilters resets to the first page and refetches with the current
// search text.
func (v *ListView) ApplyFilters(ctx context.Context) {
	v.Page = 1
	v.Load(ctx)
}

// ClearFilters drops the search text, resets to the first page and
// refetches.
func (v *ListView) ClearFilters(ctx context.Context) {
	v.Search = ""
	v.Page = 1
	v.Load(ctx)
}

// GoToPage refetches the given page. Out-of-range pages are ignored.
func (v *ListView) GoToPage(ctx context.Context, page int) {
	if page < 1 || page > v.TotalPages {
		return
	}
	v.Page = page
	v.Load(ctx)
}

// Pages returns the visible page numbers: at most maxVisiblePages,
// centered on the current page and clamped to [1, TotalPages].
func (v *ListView) Pages() []int {
	start := max(1, v.Page-maxVisiblePages/2)
	end := min(v.TotalPages, start+maxVisiblePages-1)
	if end-start < maxVisiblePages-1 {
		start = max(1, end-maxVisiblePages+1)
	}

	pages := make([]int, 0, maxVisiblePages)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
