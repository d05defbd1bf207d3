// Package format holds the presentation helpers shared by every page:
// currency and date formatting and the status CSS class mapping.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderhub/order-admin/internal/entities"
)

// Currency renders an amount in Brazilian conventions, e.g.
// "R$ 1.234,56".
func Currency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// Date renders a timestamp as dd/mm/yyyy hh:mm.
func Date(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// StatusClass maps a status to its CSS class.
func StatusClass(s entities.Status) string {
	return "status-" + strings.ToLower(string(s))
}
