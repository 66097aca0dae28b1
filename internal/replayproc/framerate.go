package replayproc

import "rocketreplay/internal/attribute"

// FrameRateDecorator wraps a Collector to enforce a minimum inter-sample
// wall-clock gap, per spec.md §4.8. A non-positive fps is treated as
// unbounded: the inner collector is invoked every frame.
type FrameRateDecorator struct {
	inner     Collector
	targetDur float32
}

// NewFrameRateDecorator wraps inner to sample at most once every 1/fps
// seconds. fps <= 0 disables throttling entirely.
func NewFrameRateDecorator(inner Collector, fps float64) *FrameRateDecorator {
	var targetDur float32
	if fps > 0 {
		targetDur = float32(1.0 / fps)
	}
	return &FrameRateDecorator{inner: inner, targetDur: targetDur}
}

// ProcessFrame invokes the inner collector, then coerces its returned
// TimeAdvance to respect the configured minimum interval.
func (d *FrameRateDecorator) ProcessFrame(p *Processor, frame attribute.Frame, frameIndex int, currentTime float32) (TimeAdvance, error) {
	advance, err := d.inner.ProcessFrame(p, frame, frameIndex, currentTime)
	if err != nil {
		return TimeAdvance{}, err
	}
	if d.targetDur <= 0 {
		return advance, nil
	}

	floor := currentTime + d.targetDur
	switch advance.Kind {
	case NextFrameKind:
		return Time(floor), nil
	case TimeKind:
		if advance.At < floor {
			return Time(floor), nil
		}
		return advance, nil
	default:
		return advance, nil
	}
}
