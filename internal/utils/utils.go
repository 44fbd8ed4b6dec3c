package utils

import "sort"

// Contains checks if a slice contains a specific element.
// It uses type parameters to work with any slice type.
func Contains[T comparable](slice []T, element T) bool {
	for _, item := range slice {
		if item == element {
			return true
		}
	}
	return false
}

// InsertSorted adds the element to a sorted string set, keeping it sorted and unique.
func InsertSorted(set []string, element string) []string {
	i := sort.SearchStrings(set, element)
	if i < len(set) && set[i] == element {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = element
	return set
}

// RemoveSorted deletes the element from a sorted string set if present.
func RemoveSorted(set []string, element string) []string {
	i := sort.SearchStrings(set, element)
	if i < len(set) && set[i] == element {
		return append(set[:i], set[i+1:]...)
	}
	return set
}
