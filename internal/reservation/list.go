package reservation

// The helpers below never modify their input slice: every committed
// change hands a fresh replacement list to the owner.

// Find returns the reservation with the given id.
func Find(list []Reservation, id string) (Reservation, bool) {
	for _, r := range list {
		if r.ID == id {
			return r, true
		}
	}
	return Reservation{}, false
}

// Replace returns a copy of list with the entry matching r.ID swapped for r.
func Replace(list []Reservation, r Reservation) []Reservation {
	out := make([]Reservation, len(list))
	for i, cur := range list {
		if cur.ID == r.ID {
			out[i] = r
			continue
		}
		out[i] = cur
	}
	return out
}

// Append returns a copy of list with r added at the end.
func Append(list []Reservation, r Reservation) []Reservation {
	out := make([]Reservation, 0, len(list)+1)
	out = append(out, list...)
	return append(out, r)
}

// Remove returns a copy of list without the reservation with the given id.
func Remove(list []Reservation, id string) []Reservation {
	out := make([]Reservation, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a shallow copy of list.
func Clone(list []Reservation) []Reservation {
	out := make([]Reservation, len(list))
	copy(out, list)
	return out
}

// IDs returns the ids of list in order.
func IDs(list []Reservation) []string {
	ids := make([]string, len(list))
	for i, r := range list {
		ids[i] = r.ID
	}
	return ids
}
