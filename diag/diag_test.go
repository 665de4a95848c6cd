package diag

import "testing"

func TestTraceNoopByDefault(t *testing.T) {
	Debugf = nil
	Trace("this must not panic: %d", 1)
}

func TestTraceCallsHook(t *testing.T) {
	var got string
	Debugf = func(f string, args ...any) { got = f }
	defer func() { Debugf = nil }()
	Trace("hello")
	if got != "hello" {
		t.Fatalf("Trace did not invoke the hook: got %q", got)
	}
}

func TestHostFeaturesDoesNotPanic(t *testing.T) {
	_ = HostFeatures()
}
