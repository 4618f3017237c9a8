package analyzing

import (
	"sort"

	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/pkg/utils"
)

// CountryRevenue agrupa por Country: quantidade de linhas e receita total arredondada,
// em ordem decrescente de receita (empate desfeito pelo nome do país)
func CountryRevenue(txs []*domain.Transaction) []domain.CountryRevenue {
	type acc struct {
		invoices int64
		revenue  float64
	}

	groups := make(map[groupKey]*acc)
	for _, tx := range txs {
		k := keyOf(tx.Country)
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
		}
		g.invoices++
		g.revenue += tx.Revenue
	}

	result := make([]domain.CountryRevenue, 0, len(groups))
	for k, g := range groups {
		result = append(result, domain.CountryRevenue{
			Country:       k.ptr(),
			TotalInvoices: g.invoices,
			TotalRevenue:  utils.RoundWithTwoDecimalPlace(g.revenue),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalRevenue != result[j].TotalRevenue {
			return result[i].TotalRevenue > result[j].TotalRevenue
		}
		return lessKey(result[i].Country, result[j].Country)
	})

	return result
}
