package utils

import "math"

// machineEpsilon absorbs float noise such as 3.0000000000004 machines
const machineEpsilon = 1e-9

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// WholeMachines returns the number of whole machines to build for a fractional count.
func WholeMachines(machines float64) int {
	if machines <= 0 {
		return 0
	}
	return int(math.Ceil(machines - machineEpsilon))
}
