// Package timeline implements the structured-timeline collector: per-frame
// ball/player/metadata records, padding absent players with an explicit
// Empty variant, per spec.md §4.10. Grounded on original_source's
// replay_data.rs collector (supplemented feature: count-based sparse-player
// padding, described in SPEC_FULL.md §10) and on the teacher's JSON-
// serializable result-record style.
package timeline

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/replayproc"
)

// MetadataFrame is one sample of match-wide metadata.
type MetadataFrame struct {
	Time             float32 `json:"time"`
	SecondsRemaining float32 `json:"seconds_remaining"`
}

// BallFrame is one sample of the ball's state, or an explicit empty variant
// when the ball is unknown, sleeping, or ball syncing is disabled.
type BallFrame struct {
	Empty    bool               `json:"empty"`
	Location attribute.Vector3f `json:"location,omitempty"`
	Rotation attribute.Quaternion `json:"rotation,omitempty"`
}

// PlayerFrame is one sample of a player's state, or an explicit empty
// variant when their rigid body is sleeping or a per-player query fails.
type PlayerFrame struct {
	Empty    bool                 `json:"empty"`
	Location attribute.Vector3f   `json:"location,omitempty"`
	Rotation attribute.Quaternion `json:"rotation,omitempty"`
	Boost    float32              `json:"boost,omitempty"`
	Jump     bool                 `json:"jump,omitempty"`
	DoubleJump bool               `json:"double_jump,omitempty"`
	Dodge    bool                 `json:"dodge,omitempty"`
	Demolished bool               `json:"demolished,omitempty"`
	Name     string               `json:"name,omitempty"`
	IsTeamZero bool               `json:"is_team_zero,omitempty"`
}

// PlayerSeries is one player's padded frame series plus their stable
// identity, kept alongside the series so a late-joining player's padding
// can be distinguished from a player who was simply never observed.
type PlayerSeries struct {
	Player attribute.PlayerId
	Frames []PlayerFrame
}

// Result is the fully accumulated structured timeline, index-aligned across
// all three series per spec.md §8 invariant 5.
type Result struct {
	Metadata []MetadataFrame
	Ball     []BallFrame
	Players  []*PlayerSeries
}

// Config controls optional fields in the emitted PlayerFrame records.
type Config struct {
	// IncludeNameAndTeam, when true, populates PlayerFrame.Name and
	// PlayerFrame.IsTeamZero on every non-empty frame.
	IncludeNameAndTeam bool
	// BallSyncingDisabled forces every BallFrame to the Empty variant,
	// mirroring the wire's bIgnoreSyncing flag.
	BallSyncingDisabled bool
}

// Collector implements replayproc.Collector, emitting one aligned
// (metadata, ball, per-player) record set per invocation.
type Collector struct {
	cfg     Config
	result  Result
	players map[attribute.PlayerId]*PlayerSeries
}

// NewCollector constructs a structured-timeline collector with cfg.
func NewCollector(cfg Config) *Collector {
	return &Collector{cfg: cfg, players: make(map[attribute.PlayerId]*PlayerSeries)}
}

// ProcessFrame implements replayproc.Collector.
func (c *Collector) ProcessFrame(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32) (replayproc.TimeAdvance, error) {
	secondsRemaining, err := p.GetSecondsRemaining()
	if err != nil {
		secondsRemaining = 0
	}
	c.result.Metadata = append(c.result.Metadata, MetadataFrame{Time: currentTime, SecondsRemaining: secondsRemaining})
	c.result.Ball = append(c.result.Ball, c.ballFrame(p, currentTime))

	seriesIndex := len(c.result.Metadata) - 1
	for _, player := range p.IterPlayerIDsInOrder() {
		series := c.seriesFor(player, seriesIndex)
		series.Frames = append(series.Frames, c.playerFrame(p, player, frameIndex))
	}

	return replayproc.NextFrame, nil
}

// seriesFor returns the player's series, creating it and back-padding with
// Empty frames up to seriesIndex if this is the player's first appearance.
// This is the count-based sparse-player padding described in SPEC_FULL.md
// §10: a player observed first at frame N has N leading Empty frames.
func (c *Collector) seriesFor(player attribute.PlayerId, seriesIndex int) *PlayerSeries {
	series, ok := c.players[player]
	if !ok {
		series = &PlayerSeries{Player: player}
		for i := 0; i < seriesIndex; i++ {
			series.Frames = append(series.Frames, PlayerFrame{Empty: true})
		}
		c.players[player] = series
		c.result.Players = append(c.result.Players, series)
	}
	return series
}

func (c *Collector) ballFrame(p *replayproc.Processor, currentTime float32) BallFrame {
	if c.cfg.BallSyncingDisabled {
		return BallFrame{Empty: true}
	}
	rb, err := p.GetInterpolatedBallRigidBody(currentTime, 0)
	if err != nil || rb.Sleeping {
		return BallFrame{Empty: true}
	}
	return BallFrame{Location: rb.Location, Rotation: rb.Rotation}
}

func (c *Collector) playerFrame(p *replayproc.Processor, player attribute.PlayerId, frameIndex int) PlayerFrame {
	rb, err := p.GetPlayerRigidBody(player)
	if err != nil || rb.Sleeping {
		return PlayerFrame{Empty: true}
	}

	boost, _ := p.GetPlayerBoostLevel(player)
	jump, _ := p.GetJumpActive(player)
	doubleJump, _ := p.GetDoubleJumpActive(player)
	dodge, _ := p.GetDodgeActive(player)
	_, demolished := p.DemolishedWithin(player, frameIndex, attribute.DemolishAppearanceFrameCount)

	out := PlayerFrame{
		Location:   rb.Location,
		Rotation:   rb.Rotation,
		Boost:      boost,
		Jump:       jump&1 == 1,
		DoubleJump: doubleJump&1 == 1,
		Dodge:      dodge&1 == 1,
		Demolished: demolished,
	}
	if c.cfg.IncludeNameAndTeam {
		out.Name, _ = p.GetPlayerName(player)
		out.IsTeamZero, _ = p.GetPlayerIsTeamZero(player)
	}
	return out
}

// Result returns the fully accumulated, index-aligned timeline.
func (c *Collector) Result() Result {
	return c.result
}

// Replay invokes apply once per aligned record across metadata, ball, and
// every player series, stopping at the first error. Grounded on the
// teacher's Loader.Replay iterator (internal/replay/loader.go), adapted from
// "replay a recorded match tick by tick" to "replay an aligned timeline
// frame by frame".
func (r Result) Replay(apply func(index int, metadata MetadataFrame, ball BallFrame, players map[attribute.PlayerId]PlayerFrame) error) error {
	for i, meta := range r.Metadata {
		players := make(map[attribute.PlayerId]PlayerFrame, len(r.Players))
		for _, series := range r.Players {
			if i < len(series.Frames) {
				players[series.Player] = series.Frames[i]
			} else {
				players[series.Player] = PlayerFrame{Empty: true}
			}
		}
		ball := BallFrame{Empty: true}
		if i < len(r.Ball) {
			ball = r.Ball[i]
		}
		if err := apply(i, meta, ball, players); err != nil {
			return err
		}
	}
	return nil
}
