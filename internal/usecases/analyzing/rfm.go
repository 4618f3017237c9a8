package analyzing

import (
	"sort"
	"time"

	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/pkg/utils"
)

// RFM calcula Recency/Frequency/Monetary brutos por CustomerID, sem faixas de score
func RFM(txs []*domain.Transaction, today time.Time) []domain.RFM {
	type acc struct {
		last      time.Time
		frequency int64
		monetary  float64
	}

	groups := make(map[groupKey]*acc)
	for _, tx := range txs {
		k := keyOf(tx.CustomerID)
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
		}

		date := tx.InvoiceDate()
		if g.frequency == 0 || date.After(g.last) {
			g.last = date
		}
		g.frequency++
		g.monetary += tx.Revenue
	}

	result := make([]domain.RFM, 0, len(groups))
	for k, g := range groups {
		result = append(result, domain.RFM{
			CustomerID:       k.ptr(),
			LastPurchaseDate: g.last,
			Frequency:        g.frequency,
			Monetary:         utils.RoundWithTwoDecimalPlace(g.monetary),
			Recency:          domain.DaysBetween(g.last, today),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return lessKey(result[i].CustomerID, result[j].CustomerID)
	})

	return result
}
