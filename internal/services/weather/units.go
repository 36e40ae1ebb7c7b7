package weather

import "math"

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// Round1 rounds to one decimal place, exact ties to even (0.25 -> 0.2).
func Round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
