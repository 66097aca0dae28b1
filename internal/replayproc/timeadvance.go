// Package replayproc drives the ordered frame loop over a parsed replay,
// maintaining actor state, relationship indexes, and derived state, and
// dispatching a pluggable Collector at collector-chosen timestamps. Grounded
// on the teacher's fixed-timestep accumulator loop
// (internal/simulation/loop.go), reworked from "advance by wall-clock tick"
// to "advance by collector-requested TimeAdvance".
package replayproc

import "rocketreplay/internal/attribute"

// TimeAdvanceKind distinguishes the two TimeAdvance variants.
type TimeAdvanceKind int

const (
	// NextFrameKind commits to the next replay frame's timestamp.
	NextFrameKind TimeAdvanceKind = iota
	// TimeKind requests reinvocation once the running clock reaches a
	// specific timestamp, which may fall within the current frame.
	TimeKind
)

// TimeAdvance is a collector's cooperative scheduling decision, returned from
// every Collector.ProcessFrame call.
type TimeAdvance struct {
	Kind TimeAdvanceKind
	At   float32 // valid only when Kind == TimeKind
}

// NextFrame is the TimeAdvance value requesting the processor move on to the
// next replay frame.
var NextFrame = TimeAdvance{Kind: NextFrameKind}

// Time requests reinvocation at wall-clock timestamp t.
func Time(t float32) TimeAdvance {
	return TimeAdvance{Kind: TimeKind, At: t}
}

// Collector is the pull-schedule callback contract described in spec.md
// §4.7. Implementations receive a read-only Processor for queries and return
// either the next TimeAdvance or an error to cooperatively cancel processing.
type Collector interface {
	ProcessFrame(p *Processor, frame attribute.Frame, frameIndex int, currentTime float32) (TimeAdvance, error)
}
