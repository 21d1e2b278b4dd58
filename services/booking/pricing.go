package booking

import (
	"math"

	"pinkmint/models"
)

// ComputeTotal returns the price of the selected package plus every selected
// add-on. No package selected contributes zero; this is not an error.
func ComputeTotal(sel models.Selection) float64 {
	total := 0.0
	if sel.Package != nil {
		total += sel.Package.Price
	}
	for _, a := range sel.AddOns {
		total += a.Price
	}
	return roundToCents(total)
}

// roundToCents keeps totals at the currency's minor-unit precision.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
