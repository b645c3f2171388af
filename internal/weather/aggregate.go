package weather

import "golang.org/x/exp/constraints"

// Number is any integer or floating point element type the aggregates accept.
// All comparisons happen after conversion to float64.
type Number interface {
	constraints.Integer | constraints.Float
}

// Mean returns the arithmetic mean of values.
func Mean[T Number](values []T) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values)), nil
}

// FindMin returns the smallest value and the index of its last occurrence.
// The second return value is false when values is empty.
func FindMin[T Number](values []T) (ExtremeResult, bool) {
	return findExtreme(values, func(v, best float64) bool { return v <= best })
}

// FindMax returns the largest value and the index of its last occurrence.
// The second return value is false when values is empty.
func FindMax[T Number](values []T) (ExtremeResult, bool) {
	return findExtreme(values, func(v, best float64) bool { return v >= best })
}

// findExtreme scans forward and moves the best index on ties, so the last
// occurrence wins.
func findExtreme[T Number](values []T, replaces func(v, best float64) bool) (ExtremeResult, bool) {
	if len(values) == 0 {
		return ExtremeResult{}, false
	}

	res := ExtremeResult{Value: float64(values[0]), Index: 0}
	for i := 1; i < len(values); i++ {
		v := float64(values[i])
		if replaces(v, res.Value) {
			res = ExtremeResult{Value: v, Index: i}
		}
	}
	return res, true
}
