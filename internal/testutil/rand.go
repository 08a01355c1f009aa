//go:build !production

package testutil

// FixedRand returns the same value on every call.
type FixedRand float64

func (r FixedRand) Float64() float64 { return float64(r) }
