package comparators

import (
	"math/big"

	"github.com/stigmergic-org/simplepage-stats/internal/models"
)

type PeriodComparator interface {
	// Compare returns the percentage change of every identity in current against previous.
	// Identities only present in previous are not part of the result.
	Compare(current, previous models.AggregateMap) models.ChangeMap
}

type periodComparator struct{}

func NewPeriodComparator() PeriodComparator {
	return &periodComparator{}
}

func (c *periodComparator) Compare(current, previous models.AggregateMap) models.ChangeMap {
	changes := make(models.ChangeMap, len(current))
	for identity, visitors := range current {
		baseline, ok := previous[identity]
		if !ok || baseline <= 0 {
			// undefined or zero baseline: no meaningful percentage
			changes[identity] = nil
			continue
		}
		change := PercentChange(visitors, baseline)
		changes[identity] = &change
	}
	return changes
}

// PercentChange formats (current - previous) / previous * 100 with exactly one decimal
// digit, rounding half away from zero. previous must be positive.
//
// The quotient is computed in tenths of a percent with exact integer arithmetic, so results
// such as "10.0" or "-4.0" carry no floating-point artifacts and no count can overflow.
func PercentChange(current, previous int64) string {
	denominator := big.NewInt(previous)
	numerator := new(big.Int).Sub(big.NewInt(current), denominator)
	numerator.Mul(numerator, big.NewInt(1000))

	tenths, remainder := new(big.Int).QuoRem(numerator, denominator, new(big.Int))
	remainder.Abs(remainder).Lsh(remainder, 1)
	if remainder.Cmp(denominator) >= 0 {
		tenths.Add(tenths, big.NewInt(int64(numerator.Sign())))
	}
	return formatTenths(tenths)
}

func formatTenths(tenths *big.Int) string {
	sign := ""
	if tenths.Sign() < 0 {
		sign = "-"
		tenths.Neg(tenths)
	}
	whole, fraction := new(big.Int).QuoRem(tenths, big.NewInt(10), new(big.Int))
	return sign + whole.String() + "." + fraction.String()
}
