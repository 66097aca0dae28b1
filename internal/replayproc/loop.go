package replayproc

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/derived"
	"rocketreplay/internal/replayerr"
)

// Run drives the main frame loop described in spec.md §4.6, dispatching
// collector at collector-chosen timestamps within each frame's time window.
// It returns the first error either from internal state maintenance or from
// the collector itself (cooperative cancellation).
func (p *Processor) Run(collector Collector) error {
	target := NextFrame

	for i, frame := range p.replay.Frames {
		if err := p.modeler.ApplyFrame(frame, i); err != nil {
			return err
		}
		p.indexes.UpdateRelationships(frame, p.replay, p.modeler)
		p.indexes.UpdateBallID(frame, p.replay)
		if err := p.updateBoost(frame, i); err != nil {
			return err
		}
		p.updateDemolishes(frame, i)

		current := frame.Time
		if target.Kind == TimeKind {
			current = target.At
		}

		for current <= frame.Time {
			next, err := collector.ProcessFrame(p, frame, i, current)
			if err != nil {
				return err
			}
			target = next
			if target.Kind == TimeKind {
				current = target.At
				continue
			}
			break
		}
	}

	if err := p.checkRosterConsistency(); err != nil {
		return err
	}
	return nil
}

func (p *Processor) updateBoost(frame attribute.Frame, frameIndex int) error {
	return derived.UpdateBoost(p.modeler, p.replay, p.indexes.CarToBoost, frame, frameIndex)
}

func (p *Processor) updateDemolishes(frame attribute.Frame, frameIndex int) {
	if !p.props.hasDemolishFx {
		return
	}
	// A DemolishFx attribute is only present in the update stream on the
	// frame it actually changes, so scanning this frame's updates (rather
	// than every car's current attribute map) is sufficient to catch every
	// new demolition.
	fxByCar := make(map[attribute.ActorId]attribute.DemolishFxAttr)
	for _, update := range frame.UpdatedActors {
		if update.ObjectId != p.props.demolishFx {
			continue
		}
		if fx, ok := update.Attribute.(attribute.DemolishFxAttr); ok {
			fxByCar[update.ActorId] = fx
		}
	}
	if len(fxByCar) == 0 {
		return
	}

	secondsRemaining := p.currentSecondsRemaining()
	derived.UpdateDemolishes(p.demolishLog, fxByCar, carOwnerAdapter{p}, secondsRemaining, frame, frameIndex)
}

func (p *Processor) currentSecondsRemaining() float32 {
	seconds, err := p.GetSecondsRemaining()
	if err != nil {
		return 0
	}
	return seconds
}

// checkRosterConsistency verifies the set of players observed during the
// main loop matches the discovery-pass roster exactly, per spec.md §4.6's
// post-loop consistency check.
func (p *Processor) checkRosterConsistency() error {
	observed := make(map[attribute.PlayerId]struct{}, len(p.indexes.PlayerToActorID))
	for id := range p.indexes.PlayerToActorID {
		observed[id] = struct{}{}
	}

	roster := make(map[attribute.PlayerId]struct{}, len(p.indexes.TeamZero)+len(p.indexes.TeamOne))
	for _, id := range p.indexes.TeamZero {
		roster[id] = struct{}{}
	}
	for _, id := range p.indexes.TeamOne {
		roster[id] = struct{}{}
	}

	if len(observed) != len(roster) {
		return replayerr.New(replayerr.InconsistentPlayerSet,
			"observed %d players, discovery pass found %d", len(observed), len(roster))
	}
	for id := range roster {
		if _, ok := observed[id]; !ok {
			return replayerr.New(replayerr.InconsistentPlayerSet, "player %v missing from main loop", id)
		}
	}
	return nil
}
