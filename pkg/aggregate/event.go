package aggregate

// Event is a named fact recorded by an aggregate.
//
// Data carries the payload of the event kind, normally a struct value
// owned by the package that defines the aggregate. Events are passed by
// value and never modified once built.
type Event struct {
	Name string
	Data any
}

// NewEvent returns an event with the given name and payload.
func NewEvent(name string, data any) Event {
	return Event{Name: name, Data: data}
}
