package grid

// Row is one room lane of the grid.
type Row struct {
	ID       string
	RoomType string
}

// Attributes returns the data attributes a row element exposes so the
// drop resolver can read them back from a hit-test path.
func (r Row) Attributes() map[string]string {
	return map[string]string{
		"data-room-id":   r.ID,
		"data-room-type": r.RoomType,
	}
}

// Element is a node of the rendered surface. Only row elements carry a
// RowID; everything else is an untagged ancestor or descendant.
type Element struct {
	RowID    string
	RoomType string
	Parent   *Element
}

// Closest returns the nearest element, starting at e itself, that is
// tagged with a row id.
func (e *Element) Closest() *Element {
	for cur := e; cur != nil; cur = cur.Parent {
		if cur.RowID != "" {
			return cur
		}
	}
	return nil
}

// Path links elements into a chain where path[0] is the innermost target
// and each following element is the parent of the previous one.
func Path(path ...Element) *Element {
	var parent *Element
	for i := len(path) - 1; i >= 0; i-- {
		el := path[i]
		el.Parent = parent
		parent = &el
	}
	return parent
}

// DropResolver tracks the candidate target row while a reservation is
// dragged across rows.
type DropResolver struct {
	valid     map[string]Row
	candidate Row
}

// NewDropResolver builds a resolver accepting only the given rows.
func NewDropResolver(rows []Row) *DropResolver {
	valid := make(map[string]Row, len(rows))
	for _, r := range rows {
		valid[r.ID] = r
	}
	return &DropResolver{valid: valid}
}

// Reset starts a new drag whose reservation lives in origin.
func (d *DropResolver) Reset(origin Row) {
	d.candidate = origin
}

// Candidate returns the current target row.
func (d *DropResolver) Candidate() Row {
	return d.candidate
}

// Valid reports whether id is a known row.
func (d *DropResolver) Valid(id string) bool {
	_, ok := d.valid[id]
	return ok
}

// Resolve walks up from target to the nearest row element. A known row
// becomes the new candidate; anything else keeps the previous one.
// The boolean reports whether target resolved to a known row.
func (d *DropResolver) Resolve(target *Element) (Row, bool) {
	el := target.Closest()
	if el == nil {
		return d.candidate, false
	}
	row, ok := d.valid[el.RowID]
	if !ok {
		return d.candidate, false
	}
	if el.RoomType != "" {
		row.RoomType = el.RoomType
	}
	d.candidate = row
	return row, true
}
