package hub

import "sort"

// Signal is a named slot on a single emitter. It holds the connections
// currently subscribed to it, keyed by (listener, connection id).
type Signal struct {
	emitter any
	id      ident
	conns   map[any]map[ident]*Connection
}

// ID returns the signal's id as it was registered: a string, or an
// int64 for integer ids of any width.
func (s *Signal) ID() any {
	if s.id.isNum {
		return s.id.num
	}
	return s.id.str
}

// Len reports how many connections are currently on the signal.
func (s *Signal) Len() int {
	n := 0
	for _, conns := range s.conns {
		n += len(conns)
	}
	return n
}

// snapshot returns the connections present right now, in creation
// order. Emit iterates the snapshot rather than the live maps so that
// reentrant mutation during the pass cannot change who gets invoked.
func (s *Signal) snapshot() []*Connection {
	out := make([]*Connection, 0, len(s.conns))
	for _, conns := range s.conns {
		for _, c := range conns {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
