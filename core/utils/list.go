package utils

import (
	"fmt"
	"strings"
)

// SplitList splits a comma separated list, trimming spaces and dropping empty items.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseList splits s with SplitList and parses every item.
// The first item that fails to parse is reported with its position.
func ParseList[T any](s string, parse func(string) (T, error)) ([]T, error) {
	items := SplitList(s)
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := parse(item)
		if err != nil {
			return nil, fmt.Errorf("item %d (%q): %w", i+1, item, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Unique returns items without duplicates, keeping the first occurrence of each.
func Unique[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
