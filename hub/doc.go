// Package hub implements a decoupled publish/subscribe registry.
//
// Arbitrary objects ("emitters") expose named signals that other
// arbitrary objects ("listeners") subscribe to, without either side
// holding a reference to the other's type. The registry keeps two
// mirrored indexes: a forward index answering "who listens to this
// emitter's signal" and a reverse index answering "what is this
// listener subscribed to", so tearing down an object's subscriptions
// costs O(its subscriptions) rather than a scan over every emitter.
//
// A signal exists from Register until Deregister or the emitting
// object's Cleanup. A connection exists from Connect until Disconnect,
// its signal's Deregister, a oneshot firing, or Cleanup of either end.
// The registry holds strong references and cannot observe object
// destruction; owners must call Cleanup before dropping an object or
// its entries stay behind forever.
//
// The registry is synchronous and single-threaded by contract. The one
// reentrancy it supports is a callback calling back into the registry
// during Emit, which is made deterministic by snapshotting the
// connection list before any callback runs. If multiple goroutines
// share a registry, guard every call with one mutex; there is no
// finer-grained locking story.
//
// A process-wide default registry is available through the package
// level functions (Register, Connect, Emit, ...). Tests and libraries
// that want isolation should construct their own with New.
package hub
