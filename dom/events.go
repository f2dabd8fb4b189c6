package dom

type Listener func(node *Node, event string)

type listener struct {
	fn Listener
}

// Events is a listener registry for nodes. html.Node carries no event
// machinery so listeners are kept beside the tree.
type Events struct {
	byNode map[*Node]map[string][]*listener
}

func NewEvents() *Events {
	return &Events{byNode: map[*Node]map[string][]*listener{}}
}

// Listen registers fn and returns a function that removes it.
func (e *Events) Listen(node *Node, event string, fn Listener) (remove func()) {
	l := &listener{fn: fn}
	events, ok := e.byNode[node]
	if !ok {
		events = map[string][]*listener{}
		e.byNode[node] = events
	}
	events[event] = append(events[event], l)

	return func() {
		events := e.byNode[node]
		list := events[event]
		for i, x := range list {
			if x == l {
				events[event] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(events[event]) == 0 {
			delete(events, event)
		}
		if len(events) == 0 {
			delete(e.byNode, node)
		}
	}
}

// Dispatch calls every listener of event on node in registration order and
// returns how many ran.
func (e *Events) Dispatch(node *Node, event string) int {
	list := e.byNode[node][event]
	if len(list) == 0 {
		return 0
	}
	snapshot := make([]*listener, len(list))
	copy(snapshot, list)
	for _, l := range snapshot {
		l.fn(node, event)
	}
	return len(snapshot)
}

// Count returns the number of listeners on node across all events.
func (e *Events) Count(node *Node) int {
	n := 0
	for _, list := range e.byNode[node] {
		n += len(list)
	}
	return n
}
