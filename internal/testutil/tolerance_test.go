package testutil

import "testing"

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2, 3.0000001}, 1e-6)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, Ones(8))
}

func TestRequireIdenticalPasses(t *testing.T) {
	RequireIdentical(t, []float32{0.5, -1}, []float32{0.5, -1})
}
