package dataset

import "math"

// Numeric is a read-only view over a numeric column. NaN entries are missing
// and are skipped by every aggregate. The type exists so analyzers can be
// unit-tested against plain slices without any dataframe machinery.
type Numeric struct {
	name   string
	values []float64
}

// FromSlice wraps raw values as a Numeric view, mainly for tests.
func FromSlice(name string, values []float64) Numeric {
	return Numeric{name: name, values: values}
}

// Name returns the source column header.
func (n Numeric) Name() string { return n.name }

// Len returns the total cell count, missing included.
func (n Numeric) Len() int { return len(n.values) }

// At returns the value at row i; NaN when missing or out of range.
func (n Numeric) At(i int) float64 {
	if i < 0 || i >= len(n.values) {
		return math.NaN()
	}
	return n.values[i]
}

// Count returns the number of non-missing values.
func (n Numeric) Count() int {
	count := 0
	for _, v := range n.values {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}

// MissingCount returns the number of missing values.
func (n Numeric) MissingCount() int { return n.Len() - n.Count() }

// Sum adds all non-missing values.
func (n Numeric) Sum() float64 {
	sum := 0.0
	for _, v := range n.values {
		if !math.IsNaN(v) {
			sum += v
		}
	}
	return sum
}

// Mean averages the non-missing values; zero when the column is empty.
func (n Numeric) Mean() float64 {
	count := n.Count()
	if count == 0 {
		return 0
	}
	return n.Sum() / float64(count)
}

// StdDev returns the population standard deviation of non-missing values.
func (n Numeric) StdDev() float64 {
	count := n.Count()
	if count == 0 {
		return 0
	}
	mean := n.Mean()
	variance := 0.0
	for _, v := range n.values {
		if !math.IsNaN(v) {
			variance += (v - mean) * (v - mean)
		}
	}
	return math.Sqrt(variance / float64(count))
}

// AbsSum adds the absolute values of all non-missing entries.
func (n Numeric) AbsSum() float64 {
	sum := 0.0
	for _, v := range n.values {
		if !math.IsNaN(v) {
			sum += math.Abs(v)
		}
	}
	return sum
}

// Max returns the largest non-missing value; zero when the column is empty.
func (n Numeric) Max() float64 {
	max := 0.0
	first := true
	for _, v := range n.values {
		if math.IsNaN(v) {
			continue
		}
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}

// CountWhere counts non-missing values satisfying pred.
func (n Numeric) CountWhere(pred func(float64) bool) int {
	count := 0
	for _, v := range n.values {
		if !math.IsNaN(v) && pred(v) {
			count++
		}
	}
	return count
}

// SumWhere adds the non-missing values satisfying pred.
func (n Numeric) SumWhere(pred func(float64) bool) float64 {
	sum := 0.0
	for _, v := range n.values {
		if !math.IsNaN(v) && pred(v) {
			sum += v
		}
	}
	return sum
}
