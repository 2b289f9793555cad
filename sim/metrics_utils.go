// sim/metrics_utils.go
package sim

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculateMean is a util function that calculates the mean of a data list.
// Returns 0 for an empty list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}
