package utils

import "github.com/shopspring/decimal"

// RoundWithTwoDecimalPlace arredonda para 2 casas com HALF_UP sobre a representação
// decimal mais curta do float (ex: 2.675 -> 2.68)
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
