package hub

// Emit invokes every connection registered on (emitter, signalID) at
// the moment Emit starts, in connection creation order, passing args
// through unchanged. The snapshot-then-invoke shape pins down the
// reentrant cases:
//
//   - a connection removed by an earlier callback in the same pass is
//     still invoked (exactly the emit-start set runs, exactly once);
//   - a connection added during the pass is not invoked until the next
//     Emit;
//   - oneshot connections are disconnected after the full pass, through
//     the regular disconnect path, which tolerates callbacks having
//     already removed them.
//
// Emitting a registered signal with zero connections is a no-op.
func (r *Registry) Emit(emitter, signalID any, args ...any) error {
	if err := checkIdentity("emitter", emitter); err != nil {
		return err
	}
	sigID, err := newIdent("signal id", signalID)
	if err != nil {
		return err
	}
	sig, ok := r.emitters[emitter][sigID]
	if !ok {
		return &SignalNotFoundError{SignalID: sigID.String()}
	}

	snapshot := sig.snapshot()
	for _, c := range snapshot {
		c.callback(args...)
	}
	for _, c := range snapshot {
		if !c.oneshot {
			continue
		}
		// A callback may have disconnected it, or deregistered the
		// whole signal and reconnected under the same key. Only the
		// exact record we invoked gets removed.
		if cur, ok := sig.conns[c.listener][c.connID]; ok && cur == c {
			r.removeConnection(c)
		}
	}
	return nil
}
