package benchmark

import (
	"fmt"
	"slices"
)

// VariationNames returns the distinct behavior names of impls, sorted.
func VariationNames(impls []Implementation) []string {
	var names []string
	for _, impl := range impls {
		for _, v := range impl.Variations {
			if !slices.Contains(names, v.Name) {
				names = append(names, v.Name)
			}
		}
	}
	slices.Sort(names)
	return names
}

// HasMultipleBehaviors reports whether impls measure more than one behavior.
func HasMultipleBehaviors(impls []Implementation) bool {
	return len(VariationNames(impls)) > 1
}

// FilterVariations returns a copy of impl holding only the variations of one
// behavior.
func FilterVariations(impl Implementation, behavior string) Implementation {
	filtered := impl
	filtered.Variations = nil
	for _, v := range impl.Variations {
		if v.Name == behavior {
			filtered.Variations = append(filtered.Variations, v)
		}
	}
	return filtered
}

// CombinedImplementations turns every (implementation, behavior) pair that has
// data into its own implementation named "Name (behavior)".
func CombinedImplementations(impls []Implementation, behaviors []string) []Implementation {
	var result []Implementation
	for _, impl := range impls {
		for _, behavior := range behaviors {
			filtered := FilterVariations(impl, behavior)
			if len(filtered.Variations) == 0 {
				continue
			}
			filtered.Name = fmt.Sprintf("%s (%s)", impl.Name, behavior)
			result = append(result, filtered)
		}
	}
	return result
}

// CPUCounts returns the distinct CPU counts of impls in ascending order.
func CPUCounts(impls []Implementation) []int {
	var counts []int
	for _, impl := range impls {
		for _, v := range impl.Variations {
			if !slices.Contains(counts, v.CPUCount) {
				counts = append(counts, v.CPUCount)
			}
		}
	}
	slices.Sort(counts)
	return counts
}
