package pricing

// LineTotal prices one order line. Jewellery is sold by weight, so the unit
// price scales with the grams purchased before the quantity multiplier.
func LineTotal(price, grams float64, quantity int) float64 {
	return price * grams * float64(quantity)
}
