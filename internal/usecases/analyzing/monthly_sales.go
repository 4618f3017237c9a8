package analyzing

import (
	"sort"

	"github.com/vfg2006/retail-analytics-batch/internal/domain"
	"github.com/vfg2006/retail-analytics-batch/pkg/utils"
)

// MonthlySales soma a receita por (ano, mês) de InvoiceDate em ordem crescente
func MonthlySales(txs []*domain.Transaction) []domain.MonthlySales {
	type period struct {
		year  int
		month int
	}

	groups := make(map[period]float64)
	for _, tx := range txs {
		date := tx.InvoiceDate()
		groups[period{year: date.Year(), month: int(date.Month())}] += tx.Revenue
	}

	result := make([]domain.MonthlySales, 0, len(groups))
	for p, revenue := range groups {
		result = append(result, domain.MonthlySales{
			Year:           p.year,
			Month:          p.month,
			MonthlyRevenue: utils.RoundWithTwoDecimalPlace(revenue),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		return result[i].Month < result[j].Month
	})

	return result
}
