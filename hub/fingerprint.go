package hub

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests the observable registry state: one entry per
// registered signal and one per connection, with objects identified by
// their stable identity-table tokens rather than pointer values. Entry
// hashes are summed, so the digest is independent of map iteration
// order. Two registries built through the same sequence of operations,
// or one registry before and after a connect/disconnect round trip,
// fingerprint identically; an empty registry digests to zero.
//
// Only the forward index is walked. Index symmetry guarantees the
// reverse index carries no extra information.
func (r *Registry) Fingerprint() uint64 {
	var sum uint64
	for emitter, slots := range r.emitters {
		eid := r.objects[emitter]
		for id, sig := range slots {
			sum += entryHash(eid, id, 0, ident{}, false, false)
			for listener, conns := range sig.conns {
				lid := r.objects[listener]
				for cid, c := range conns {
					sum += entryHash(eid, id, lid, cid, true, c.oneshot)
				}
			}
		}
	}
	return sum
}

func entryHash(eid uint64, sigID ident, lid uint64, connID ident, isConn, oneshot bool) uint64 {
	d := xxhash.New()
	d.WriteString(strconv.FormatUint(eid, 10))
	d.WriteString("\x00")
	d.WriteString(sigID.key())
	d.WriteString("\x00")
	if isConn {
		d.WriteString(strconv.FormatUint(lid, 10))
		d.WriteString("\x00")
		d.WriteString(connID.key())
		d.WriteString("\x00")
		d.WriteString(strconv.FormatBool(oneshot))
	}
	return d.Sum64()
}
