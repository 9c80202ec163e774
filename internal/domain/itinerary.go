package domain

// The editing flow treats an itinerary as a dense, 1-indexed sequence of
// stops. Move and remove are deterministic slice transforms used to prepare
// the array before a whole-itinerary replace; they never touch storage.

// MoveDirection selects which neighbor a stop swaps with.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"   // toward the front of the itinerary
	MoveDown MoveDirection = "down" // toward the back of the itinerary
)

// MoveStop returns a copy of stops with the stop at index swapped with its
// neighbor in the given direction, and Order renumbered 1..N.
// A move off either end is a no-op (the renumbered copy is still returned).
// Returns ErrValidation if index is out of range or direction is unknown.
func MoveStop(stops []Stop, index int, direction MoveDirection) ([]Stop, error) {
	if index < 0 || index >= len(stops) {
		return nil, ErrValidation
	}

	out := make([]Stop, len(stops))
	copy(out, stops)

	switch direction {
	case MoveUp:
		if index > 0 {
			out[index-1], out[index] = out[index], out[index-1]
		}
	case MoveDown:
		if index < len(out)-1 {
			out[index], out[index+1] = out[index+1], out[index]
		}
	default:
		return nil, ErrValidation
	}

	RenumberStops(out)
	return out, nil
}

// RemoveStop returns a copy of stops without the entry at index, with the
// remainder renumbered 1..N (no gaps).
// Returns ErrValidation if index is out of range.
func RemoveStop(stops []Stop, index int) ([]Stop, error) {
	if index < 0 || index >= len(stops) {
		return nil, ErrValidation
	}

	out := make([]Stop, 0, len(stops)-1)
	out = append(out, stops[:index]...)
	out = append(out, stops[index+1:]...)

	RenumberStops(out)
	return out, nil
}

// RenumberStops overwrites Order with the dense sequence 1..N in slice order.
// Caller-supplied order values are never trusted; array position wins.
func RenumberStops(stops []Stop) {
	for i := range stops {
		stops[i].Order = i + 1
	}
}
