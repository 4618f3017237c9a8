package analyzing

import (
	"sort"

	"github.com/vfg2006/retail-analytics-batch/internal/domain"
)

// TopProducts soma Quantity por Description em ordem decrescente.
// Description nula e vazia são grupos distintos.
func TopProducts(txs []*domain.Transaction) []domain.ProductQuantity {
	groups := make(map[groupKey]int64)
	for _, tx := range txs {
		groups[keyOf(tx.Description)] += tx.Quantity
	}

	result := make([]domain.ProductQuantity, 0, len(groups))
	for k, total := range groups {
		result = append(result, domain.ProductQuantity{
			Description:   k.ptr(),
			TotalQuantity: total,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalQuantity != result[j].TotalQuantity {
			return result[i].TotalQuantity > result[j].TotalQuantity
		}
		return lessKey(result[i].Description, result[j].Description)
	})

	return result
}
