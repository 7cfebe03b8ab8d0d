package queue

import "github.com/rmaciel/atendimento/internal/model"

// Key extracts the ordering key of a customer
type Key func(c model.Customer) float64

// ByArrival orders customers by arrival minute
func ByArrival(c model.Customer) float64 {
	return c.Arrival
}

// MergeSort returns a new slice with customers ordered ascending by key.
// Stable, O(n log n).
func MergeSort(customers []model.Customer, key Key) []model.Customer {
	if len(customers) <= 1 {
		out := make([]model.Customer, len(customers))
		copy(out, customers)
		return out
	}

	mid := len(customers) / 2
	left := MergeSort(customers[:mid], key)
	right := MergeSort(customers[mid:], key)

	merged := make([]model.Customer, 0, len(customers))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if key(left[i]) <= key(right[j]) {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}

// QuickSort returns a new slice with customers ordered ascending by key.
// O(n log n) on average, quadratic when the middle pivot is degenerate.
func QuickSort(customers []model.Customer, key Key) []model.Customer {
	if len(customers) <= 1 {
		out := make([]model.Customer, len(customers))
		copy(out, customers)
		return out
	}

	pivot := key(customers[len(customers)/2])

	var left, middle, right []model.Customer
	for _, c := range customers {
		switch k := key(c); {
		case k < pivot:
			left = append(left, c)
		case k == pivot:
			middle = append(middle, c)
		default:
			right = append(right, c)
		}
	}

	sorted := QuickSort(left, key)
	sorted = append(sorted, middle...)
	sorted = append(sorted, QuickSort(right, key)...)
	return sorted
}

// Sort dispatches to the algorithm named by alg, falling back to merge sort
// for unknown names
func Sort(customers []model.Customer, alg string, key Key) []model.Customer {
	if alg == model.AlgorithmQuick {
		return QuickSort(customers, key)
	}
	return MergeSort(customers, key)
}

// ComplexityHint describes the average complexity of the algorithm, it is
// carried verbatim into statistics reports
func ComplexityHint(alg string) string {
	switch alg {
	case model.AlgorithmMerge:
		return "O(n log n)"
	case model.AlgorithmQuick:
		return "O(n log n) (pior caso O(n^2) se pivô ruim)"
	default:
		return "Desconhecida"
	}
}
