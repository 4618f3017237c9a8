package analyzing

import (
	"sort"
	"time"

	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

// DefaultChurnThresholdDays é o limite de inatividade acima do qual o cliente é considerado perdido
const DefaultChurnThresholdDays = 90

// LastPurchases retorna a maior InvoiceDate por CustomerID. Clientes nulos formam um grupo próprio.
func LastPurchases(txs []*domain.Transaction) []domain.LastPurchase {
	groups := make(map[groupKey]time.Time)
	for _, tx := range txs {
		k := keyOf(tx.CustomerID)
		date := tx.InvoiceDate()
		if last, ok := groups[k]; !ok || date.After(last) {
			groups[k] = date
		}
	}

	result := make([]domain.LastPurchase, 0, len(groups))
	for k, date := range groups {
		result = append(result, domain.LastPurchase{
			CustomerID:       k.ptr(),
			LastPurchaseDate: date,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return lessKey(result[i].CustomerID, result[j].CustomerID)
	})

	return result
}

// ChurnAnalysis classifica cada última compra em relação a today.
// Exatamente thresholdDays de inatividade ainda é Retained.
func ChurnAnalysis(lastPurchases []domain.LastPurchase, today time.Time, thresholdDays int) []domain.ChurnAnalysis {
	result := make([]domain.ChurnAnalysis, 0, len(lastPurchases))
	for _, lp := range lastPurchases {
		days := domain.DaysBetween(lp.LastPurchaseDate, today)
		result = append(result, domain.ChurnAnalysis{
			LastPurchase:          lp,
			DaysSinceLastPurchase: days,
			ChurnStatus:           ChurnStatus(days, thresholdDays),
		})
	}
	return result
}

func ChurnStatus(daysSinceLastPurchase int, thresholdDays int) string {
	if daysSinceLastPurchase > thresholdDays {
		return domain.ChurnStatusChurned
	}
	return domain.ChurnStatusRetained
}
