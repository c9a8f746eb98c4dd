package grid

// Listeners gives a busy grid access to pointer releases that happen
// anywhere on the page, including outside the grid.
type Listeners interface {
	// OnRelease attaches fn and returns the function that detaches it.
	OnRelease(fn func(PointerEvent)) (detach func())
}

// Document is the page-level release dispatcher. It is not safe for
// concurrent use; its owner serialises access.
type Document struct {
	next     int
	handlers map[int]func(PointerEvent)
	order    []int
}

func NewDocument() *Document {
	return &Document{handlers: make(map[int]func(PointerEvent))}
}

func (d *Document) OnRelease(fn func(PointerEvent)) func() {
	id := d.next
	d.next++
	d.handlers[id] = fn
	d.order = append(d.order, id)

	return func() {
		if _, ok := d.handlers[id]; !ok {
			return
		}
		delete(d.handlers, id)
		for i, v := range d.order {
			if v == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Release delivers a pointer-up to every attached listener. Listeners
// may detach themselves while being called.
func (d *Document) Release(ev PointerEvent) {
	ids := make([]int, len(d.order))
	copy(ids, d.order)
	for _, id := range ids {
		if fn, ok := d.handlers[id]; ok {
			fn(ev)
		}
	}
}

// Attached returns the number of attached listeners.
func (d *Document) Attached() int {
	return len(d.handlers)
}
