package enigma

// EventKind names a diagnostic event.
type EventKind string

const (
	EventInput      EventKind = "input"
	EventOutput     EventKind = "output"
	EventTranslate  EventKind = "translate"
	EventStep       EventKind = "step"
	EventDoubleStep EventKind = "double-step"
)

// Event is a diagnostic notification from a component or the machine.
// Letters are rendered as strings; Rotation, RingOffset and Turnover are only
// filled for rotor events.
type Event struct {
	Kind        EventKind
	Name        string
	Type        ComponentType
	Direction   Direction
	Input       string
	Output      string
	Description string
	Rotation    int
	RingOffset  int
	Turnover    bool
}

// Listener receives diagnostic events.
type Listener interface {
	HandleEvent(Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(Event)

// HandleEvent calls f(e).
func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// listeners keeps named listeners in registration order.
type listeners struct {
	names []string
	byKey map[string]Listener
}

func (l *listeners) add(name string, lis Listener) {
	if l.byKey == nil {
		l.byKey = make(map[string]Listener)
	}
	if _, ok := l.byKey[name]; !ok {
		l.names = append(l.names, name)
	}
	l.byKey[name] = lis
}

func (l *listeners) remove(name string) {
	if _, ok := l.byKey[name]; !ok {
		return
	}
	delete(l.byKey, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i], l.names[i+1:]...)
			break
		}
	}
}

func (l *listeners) empty() bool { return len(l.names) == 0 }

func (l *listeners) fire(e Event) {
	for _, n := range l.names {
		l.byKey[n].HandleEvent(e)
	}
}
