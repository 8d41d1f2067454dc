// Package ordering moves an item one place up or down a ranked sibling list.
package ordering

import "fmt"

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q", s)
}

// Move returns a copy of items with the item at index swapped with its neighbour in the
// given direction. The second result is false, and items are returned unchanged, when the
// item is already at that end of the list or index is out of range.
func Move[T any](items []T, index int, dir Direction) ([]T, bool) {
	target := index - 1
	if dir == Down {
		target = index + 1
	}
	if index < 0 || index >= len(items) || target < 0 || target >= len(items) {
		return items, false
	}
	out := make([]T, len(items))
	copy(out, items)
	out[index], out[target] = out[target], out[index]
	return out, true
}

// Resequence maps every item's id to its position, so a moved list can be written back
// with one order per sibling.
func Resequence[T any](items []T, id func(T) string) map[string]int {
	orders := make(map[string]int, len(items))
	for i, item := range items {
		orders[id(item)] = i
	}
	return orders
}

// IndexOf returns the position of the item with the given id, or -1.
func IndexOf[T any](items []T, id func(T) string, want string) int {
	for i, item := range items {
		if id(item) == want {
			return i
		}
	}
	return -1
}
