package pointerflow

import "time"

// dispatchStats holds per-dispatch timing and chain metrics.
// Only logged when the processor is in debug mode.
type dispatchStats struct {
	middlewareTime time.Duration
	afterwareTime  time.Duration
	middlewareRun  int
	afterwareRun   int
	status         Status
}

// debugLog prints timing and chain stats at debug level.
func (p *Processor) debugLog(ev Event, stats dispatchStats) {
	if !p.debug {
		return
	}
	p.log.Debugf("%s depth %d | middleware: %d/%d in %v (%s) | afterware: %d in %v",
		ev.Type(), p.depth,
		stats.middlewareRun, len(p.middleware), stats.middlewareTime, stats.status,
		stats.afterwareRun, stats.afterwareTime)
	debugCheckDepth(p, ev)
}

// debugWarnDepth is the nesting level above which debug mode warns, well
// before MaxDepth drops events.
const debugWarnDepth = 8

func debugCheckDepth(p *Processor, ev Event) {
	if p.depth > debugWarnDepth {
		p.log.Warnf("%s dispatched at depth %d (limit %d)", ev.Type(), p.depth, p.maxDepth)
	}
}

// debugCheckGestures warns when the gesture map grows unusually large, which
// usually means an adapter never reports end events.
const debugMaxGestures = 64

func debugCheckGestures(p *Processor, gestures GestureMap) {
	if p.debug && len(gestures) > debugMaxGestures {
		p.log.Warnf("%d live gestures (threshold %d)", len(gestures), debugMaxGestures)
	}
}
