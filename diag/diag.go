// package diag holds the engine's diagnostic hooks: an optional debug
// logging callback the embedding application can set, and a read-only
// report of CPU features relevant to the bit kernel's design rationale.
package diag

import "golang.org/x/sys/cpu"

// Debugf is a global diagnostic function the embedding application may
// set during init() to capture table-saturation and full-reset events
// from the engine. By default it is nil and every
// diagnostic call is a no-op.
var Debugf func(f string, args ...any)

// Trace calls Debugf if it has been set, and is a no-op otherwise. Other
// packages in this module call Trace rather than checking Debugf
// themselves.
func Trace(f string, args ...any) {
	if Debugf != nil {
		Debugf(f, args...)
	}
}

// Features reports CPU capabilities that bear on whether a wider bit
// kernel (256- or 512-bit SIMD) would outperform the portable 64-bit one
// this engine uses; it has no effect on the engine's behaviour.
type Features struct {
	AVX2   bool
	AVX512 bool
}

// HostFeatures inspects the running CPU.
func HostFeatures() Features {
	return Features{
		AVX2:   cpu.X86.HasAVX2,
		AVX512: cpu.X86.HasAVX512F,
	}
}
