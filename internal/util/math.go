package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// RoundFloat64 rounds f to n decimal places.
func RoundFloat64(f float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(f*pow) / pow
}

// FloorScale scales base by an integer percentage factor, flooring the
// result. Inputs are never negative in game formulas.
func FloorScale(base, factor int) int {
	return base * factor / 100
}
