package hub

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Registry is the dual-indexed connection store. Every mutating
// operation writes the forward index (by emitter) and the reverse index
// (by listener) in lock-step; a connection is present in one if and
// only if it is present in the other.
//
// A Registry is not safe for concurrent use. See the package doc.
type Registry struct {
	// forward: emitter -> signal id -> signal (which holds
	// listener -> connection id -> connection)
	emitters map[any]map[ident]*Signal

	// reverse: listener -> emitter -> signal id -> connection id -> connection
	listeners map[any]map[any]map[ident]map[ident]*Connection

	// objects assigns a stable token to every object present in either
	// index, released as soon as the object leaves both. Fingerprint
	// hashes these tokens instead of pointer values.
	objects map[any]uint64
	nextObj uint64

	// seq stamps connections at creation time; Emit dispatches in
	// ascending seq order.
	seq uint64
}

func New() *Registry {
	return &Registry{
		emitters:  map[any]map[ident]*Signal{},
		listeners: map[any]map[any]map[ident]map[ident]*Connection{},
		objects:   map[any]uint64{},
	}
}

// Register creates an empty signal for (emitter, signalID). Registering
// the same pair twice fails with ErrDuplicateSignal.
func (r *Registry) Register(emitter, signalID any) error {
	if err := checkIdentity("emitter", emitter); err != nil {
		return err
	}
	id, err := newIdent("signal id", signalID)
	if err != nil {
		return err
	}

	slots := r.emitters[emitter]
	if slots == nil {
		slots = map[ident]*Signal{}
		r.emitters[emitter] = slots
		r.retain(emitter)
	} else if _, ok := slots[id]; ok {
		return &DuplicateSignalError{SignalID: id.String()}
	}
	slots[id] = &Signal{
		emitter: emitter,
		id:      id,
		conns:   map[any]map[ident]*Connection{},
	}
	return nil
}

// Get is the one non-failing existence probe in the API: it reports
// whether (emitter, signalID) is registered, and never errors.
func (r *Registry) Get(emitter, signalID any) (*Signal, bool) {
	if checkIdentity("emitter", emitter) != nil {
		return nil, false
	}
	id, err := newIdent("signal id", signalID)
	if err != nil {
		return nil, false
	}
	sig, ok := r.emitters[emitter][id]
	return sig, ok
}

// Deregister disconnects every connection on the signal and removes it.
// An absent signal is a no-op, unlike Connect/Disconnect/Emit which
// require existence: deregistration races with teardown paths that may
// already have swept the signal away.
func (r *Registry) Deregister(emitter, signalID any) {
	if checkIdentity("emitter", emitter) != nil {
		return
	}
	id, err := newIdent("signal id", signalID)
	if err != nil {
		return
	}
	r.deregister(emitter, id)
}

func (r *Registry) deregister(emitter any, id ident) {
	slots, ok := r.emitters[emitter]
	if !ok {
		return
	}
	sig, ok := slots[id]
	if !ok {
		return
	}
	for _, c := range sig.snapshot() {
		r.removeConnection(c)
	}
	delete(slots, id)
	if len(slots) == 0 {
		delete(r.emitters, emitter)
		r.release(emitter)
	}
}

// ConnectOption configures a single Connect call.
type ConnectOption func(*connectConfig)

type connectConfig struct {
	callback Callback
	oneshot  bool
}

// WithCallback supplies the function invoked on emission. Without it,
// Connect binds the exported method named by the connection id on the
// listener; the id then doubles as uniqueness key and method selector.
func WithCallback(cb Callback) ConnectOption {
	return func(cfg *connectConfig) { cfg.callback = cb }
}

// Oneshot marks the connection to disconnect itself after its first
// invocation. The disconnect is unconditional on invocation, not on
// anything the callback decides internally.
func Oneshot() ConnectOption {
	return func(cfg *connectConfig) { cfg.oneshot = true }
}

// Connect subscribes listener to (emitter, signalID) under connID. The
// signal must already be registered. At most one connection may exist
// for a given 4-tuple; a duplicate fails with ErrDuplicateConnection
// and leaves both indexes untouched.
func (r *Registry) Connect(emitter, signalID, listener, connID any, opts ...ConnectOption) error {
	if err := checkIdentity("emitter", emitter); err != nil {
		return err
	}
	if err := checkIdentity("listener", listener); err != nil {
		return err
	}
	sigID, err := newIdent("signal id", signalID)
	if err != nil {
		return err
	}
	cID, err := newIdent("connection id", connID)
	if err != nil {
		return err
	}

	var cfg connectConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.callback == nil {
		cb, err := methodCallback(listener, cID)
		if err != nil {
			return err
		}
		cfg.callback = cb
	}

	sig, ok := r.emitters[emitter][sigID]
	if !ok {
		return &SignalNotFoundError{SignalID: sigID.String()}
	}
	if _, ok := sig.conns[listener][cID]; ok {
		return &DuplicateConnectionError{SignalID: sigID.String(), ConnectionID: cID.String()}
	}

	r.seq++
	c := &Connection{
		emitter:  emitter,
		signalID: sigID,
		listener: listener,
		connID:   cID,
		callback: cfg.callback,
		oneshot:  cfg.oneshot,
		seq:      r.seq,
	}

	conns := sig.conns[listener]
	if conns == nil {
		conns = map[ident]*Connection{}
		sig.conns[listener] = conns
	}
	conns[cID] = c

	byEmitter := r.listeners[listener]
	if byEmitter == nil {
		byEmitter = map[any]map[ident]map[ident]*Connection{}
		r.listeners[listener] = byEmitter
		r.retain(listener)
	}
	bySignal := byEmitter[emitter]
	if bySignal == nil {
		bySignal = map[ident]map[ident]*Connection{}
		byEmitter[emitter] = bySignal
	}
	rc := bySignal[sigID]
	if rc == nil {
		rc = map[ident]*Connection{}
		bySignal[sigID] = rc
	}
	rc[cID] = c
	return nil
}

// Disconnect removes the exact connection named by the 4-tuple from
// both indexes. The signal must exist; the connection itself need not,
// since the caller may race against a oneshot or a Cleanup that already
// removed it.
func (r *Registry) Disconnect(emitter, signalID, listener, connID any) error {
	if err := checkIdentity("emitter", emitter); err != nil {
		return err
	}
	if err := checkIdentity("listener", listener); err != nil {
		return err
	}
	sigID, err := newIdent("signal id", signalID)
	if err != nil {
		return err
	}
	cID, err := newIdent("connection id", connID)
	if err != nil {
		return err
	}

	sig, ok := r.emitters[emitter][sigID]
	if !ok {
		return &SignalNotFoundError{SignalID: sigID.String()}
	}
	c, ok := sig.conns[listener][cID]
	if !ok {
		return nil
	}
	r.removeConnection(c)
	return nil
}

// removeConnection deletes a connection from both indexes and prunes
// every intermediate map that becomes empty, so outer-map membership
// stays equivalent to "has any entries".
func (r *Registry) removeConnection(c *Connection) {
	if sig, ok := r.emitters[c.emitter][c.signalID]; ok {
		if conns, ok := sig.conns[c.listener]; ok {
			delete(conns, c.connID)
			if len(conns) == 0 {
				delete(sig.conns, c.listener)
			}
		}
	}

	byEmitter, ok := r.listeners[c.listener]
	if !ok {
		return
	}
	if bySignal, ok := byEmitter[c.emitter]; ok {
		if conns, ok := bySignal[c.signalID]; ok {
			delete(conns, c.connID)
			if len(conns) == 0 {
				delete(bySignal, c.signalID)
			}
		}
		if len(bySignal) == 0 {
			delete(byEmitter, c.emitter)
		}
	}
	if len(byEmitter) == 0 {
		delete(r.listeners, c.listener)
		r.release(c.listener)
	}
}

// Cleanup erases object's presence from the registry: first every
// connection it holds as a listener, then every signal it owns as an
// emitter. Afterwards the object appears in neither index and its
// identity-table entry is gone, so discarded objects cost nothing.
// Owners must call this before dropping an object; the registry holds
// strong references and cannot detect destruction.
func (r *Registry) Cleanup(object any) error {
	if err := checkIdentity("object", object); err != nil {
		return err
	}

	var doomed []*Connection
	for _, bySignal := range r.listeners[object] {
		for _, conns := range bySignal {
			for _, c := range conns {
				doomed = append(doomed, c)
			}
		}
	}
	for _, c := range doomed {
		r.removeConnection(c)
	}

	ids := make([]ident, 0, len(r.emitters[object]))
	for id := range r.emitters[object] {
		ids = append(ids, id)
	}
	for _, id := range ids {
		r.deregister(object, id)
	}
	return nil
}

// Objects returns every object currently present in either index.
// Mostly a test and debugging aid: after Cleanup(x) the returned set
// must not contain x.
func (r *Registry) Objects() mapset.Set[any] {
	set := mapset.NewSet[any]()
	for obj := range r.emitters {
		set.Add(obj)
	}
	for obj := range r.listeners {
		set.Add(obj)
	}
	return set
}

func (r *Registry) retain(obj any) {
	if _, ok := r.objects[obj]; !ok {
		r.nextObj++
		r.objects[obj] = r.nextObj
	}
}

// release drops the identity-table entry once the object is out of both
// indexes. Called after every top-level prune.
func (r *Registry) release(obj any) {
	if _, ok := r.emitters[obj]; ok {
		return
	}
	if _, ok := r.listeners[obj]; ok {
		return
	}
	delete(r.objects, obj)
}
