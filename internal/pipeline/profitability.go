package pipeline

// GrossProfit is revenue minus cost of goods. It may be negative.
func GrossProfit(totalRevenue, totalCogs float64) float64 {
	return dec(totalRevenue).Sub(dec(totalCogs)).InexactFloat64()
}

// NetIncome is gross profit minus all operating expenses. It may be negative.
func NetIncome(grossProfit, totalExpenses float64) float64 {
	return dec(grossProfit).Sub(dec(totalExpenses)).InexactFloat64()
}

// PercentOf returns part as a percentage of whole, or 0 when whole is not
// positive.
func PercentOf(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}
