package hub

// The process-wide default registry backing the package-level API.
var defaultRegistry = New()

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry { return defaultRegistry }

func Register(emitter, signalID any) error {
	return defaultRegistry.Register(emitter, signalID)
}

func Get(emitter, signalID any) (*Signal, bool) {
	return defaultRegistry.Get(emitter, signalID)
}

func Deregister(emitter, signalID any) {
	defaultRegistry.Deregister(emitter, signalID)
}

func Connect(emitter, signalID, listener, connID any, opts ...ConnectOption) error {
	return defaultRegistry.Connect(emitter, signalID, listener, connID, opts...)
}

func Disconnect(emitter, signalID, listener, connID any) error {
	return defaultRegistry.Disconnect(emitter, signalID, listener, connID)
}

func Emit(emitter, signalID any, args ...any) error {
	return defaultRegistry.Emit(emitter, signalID, args...)
}

func Cleanup(object any) error {
	return defaultRegistry.Cleanup(object)
}
