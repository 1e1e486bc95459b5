package services

import (
	"fmt"
	"sort"

	"github.com/sbilibin2017/sport-together/internal/models"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeValue converts a decoded JSON value into the Go type the update
// command expects for a column of the given kind.
func normalizeValue(kind models.FieldKind, v any) (any, error) {
	switch kind {
	case models.KindNullable:
		switch t := v.(type) {
		case nil:
			return (*string)(nil), nil
		case *string:
			return t, nil
		case string:
			if t == "" {
				return (*string)(nil), nil
			}
			return &t, nil
		}
	case models.KindList, models.KindSet:
		switch t := v.(type) {
		case []string:
			return t, nil
		case models.StringList:
			return []string(t), nil
		case nil:
			return []string{}, nil
		case []any:
			out := make([]string, 0, len(t))
			for _, e := range t {
				s, ok := e.(string)
				if !ok {
					return nil, fmt.Errorf("list element must be a string, got %T", e)
				}
				out = append(out, s)
			}
			return out, nil
		}
	default:
		return v, nil
	}
	return nil, fmt.Errorf("unexpected value of type %T", v)
}

// distinct returns the elements of lists in first-seen order without repeats.
func distinct(lists ...[]string) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
