package viewer

// EventKind is the type of an input event.
type EventKind int

const (
	EventResize EventKind = iota
	EventKey
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventWheel
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Key is a keyboard key the viewer reacts to.
type Key string

const (
	KeyFocus  Key = "f"
	KeyView3D Key = "1"
	KeyPlan   Key = "2"
)

// Event is one input event in client pixels.
type Event struct {
	Kind          EventKind
	X, Y          float32
	Button        Button
	Wheel         float32
	Key           Key
	Width, Height float32
}

// Bus dispatches input events to subscribers. Like everything else in the viewer it runs on the
// render goroutine only.
type Bus struct {
	next     int
	handlers map[EventKind]map[int]func(Event)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind]map[int]func(Event))}
}

// Subscribe registers fn for kind and returns the function that removes it.
func (b *Bus) Subscribe(kind EventKind, fn func(Event)) func() {
	b.next++
	id := b.next
	if b.handlers[kind] == nil {
		b.handlers[kind] = make(map[int]func(Event))
	}
	b.handlers[kind][id] = fn
	return func() {
		delete(b.handlers[kind], id)
	}
}

// Publish delivers e to every subscriber of its kind.
func (b *Bus) Publish(e Event) {
	for _, fn := range b.handlers[e.Kind] {
		fn(e)
	}
}

// Count returns the number of live subscriptions.
func (b *Bus) Count() int {
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}
