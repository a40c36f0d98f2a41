package softmask

import (
	"fmt"
	"log"
	"os"
)

// globalDebug enables verbose diagnostics on stderr. Warnings about degraded
// masking are emitted regardless; debug mode adds per-tick detail.
var globalDebug bool

// SetDebug toggles verbose diagnostics on stderr.
func SetDebug(enabled bool) {
	globalDebug = enabled
}

// warnKind distinguishes the recoverable failure classes. Each class warns
// once per distinct offending configuration, then stays quiet until the
// configuration changes, so a degraded mask cannot flood the log across
// ticks.
type warnKind uint8

const (
	warnUnsupportedMaterial warnKind = iota
	warnDegradedSprite
	warnUnreadableSample
)

// warnKey identifies one distinct offending configuration.
type warnKey struct {
	kind     warnKind
	material *Material
	image    any // *ebiten.Image identity; any keeps the key comparable when nil
}

// warnSet deduplicates warnings per mask. Configuration setters reset it so a
// changed configuration warns afresh.
type warnSet map[warnKey]struct{}

// warnOnce logs the message the first time the key is seen.
func (w warnSet) warnOnce(key warnKey, format string, args ...any) {
	if _, seen := w[key]; seen {
		return
	}
	w[key] = struct{}{}
	log.Printf("[softmask] warning: "+format, args...)
}

// debugf prints a diagnostic line when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[softmask] "+format+"\n", args...)
}
