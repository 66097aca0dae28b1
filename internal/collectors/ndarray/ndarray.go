// Package ndarray turns per-frame processor queries into rows of a 2-D
// floating-point matrix via two pluggable families of feature adders
// (global and per-player), per spec.md §4.9. Grounded on the teacher's
// TickDiff accumulation shape (internal/state/world.go) generalized from "one
// struct per tick" to "one row of named float columns per sampled instant".
package ndarray

import (
	"rocketreplay/internal/attribute"
	"rocketreplay/internal/replayerr"
	"rocketreplay/internal/replayproc"
)

// FeatureAdder contributes one or more global (non-player-scoped) columns to
// every emitted row.
type FeatureAdder interface {
	ColumnHeaders() []string
	FeaturesAdded() int
	AddFeatures(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32
}

// PlayerFeatureAdder contributes one or more columns per roster player to
// every emitted row.
type PlayerFeatureAdder interface {
	ColumnHeaders() []string
	FeaturesAdded() int
	AddPlayerFeatures(p *replayproc.Processor, player attribute.PlayerId, playerIndex int, frame attribute.Frame, frameIndex int, currentTime float32, row []float32) []float32
}

// Meta describes the shape and provenance of a completed NDArray dump.
type Meta struct {
	TeamZero      []string
	TeamOne       []string
	GlobalHeaders []string
	PlayerHeaders []string
	FramesAdded   int
	GlobalWidth   int
	PlayerWidth   int
	PlayerCount   int
}

// Collector accumulates a row-major float32 matrix, one row per sampled
// instant, per the NDArray collector protocol in spec.md §4.9.
type Collector struct {
	globals      []FeatureAdder
	perPlayer    []PlayerFeatureAdder
	data         []float32
	framesAdded  int
	metaCaptured bool
	meta         Meta
}

// NewCollector constructs an NDArray collector with the given adder
// configuration. Passing nil for either slice uses spec.md §4.9's default
// configuration for that family.
func NewCollector(globals []FeatureAdder, perPlayer []PlayerFeatureAdder) *Collector {
	if globals == nil {
		globals = DefaultGlobalAdders()
	}
	if perPlayer == nil {
		perPlayer = DefaultPlayerAdders()
	}
	return &Collector{globals: globals, perPlayer: perPlayer}
}

func (c *Collector) globalWidth() int {
	width := 0
	for _, adder := range c.globals {
		width += adder.FeaturesAdded()
	}
	return width
}

func (c *Collector) playerWidth() int {
	width := 0
	for _, adder := range c.perPlayer {
		width += adder.FeaturesAdded()
	}
	return width
}

// ProcessFrame implements replayproc.Collector. The ball-rigid-body gate
// described in spec.md §4.9 is lifted entirely per the Open Question
// decision recorded in DESIGN.md: every frame emits a row, and individual
// feature adders are responsible for sentinel values when state is absent.
func (c *Collector) ProcessFrame(p *replayproc.Processor, frame attribute.Frame, frameIndex int, currentTime float32) (replayproc.TimeAdvance, error) {
	if !c.metaCaptured {
		c.captureMeta(p)
	}

	row := make([]float32, 0, c.globalWidth()+c.playerWidth()*len(c.meta.TeamZero)+c.playerWidth()*len(c.meta.TeamOne))
	for _, adder := range c.globals {
		row = adder.AddFeatures(p, frame, frameIndex, currentTime, row)
	}
	for playerIndex, player := range p.IterPlayerIDsInOrder() {
		for _, adder := range c.perPlayer {
			row = adder.AddPlayerFeatures(p, player, playerIndex, frame, frameIndex, currentTime, row)
		}
	}

	c.data = append(c.data, row...)
	c.framesAdded++
	return replayproc.NextFrame, nil
}

func (c *Collector) captureMeta(p *replayproc.Processor) {
	order := p.IterPlayerIDsInOrder()
	teamZero := make([]string, 0)
	teamOne := make([]string, 0)
	for _, player := range order {
		isZero, err := p.GetPlayerIsTeamZero(player)
		name, nameErr := p.GetPlayerName(player)
		if nameErr != nil {
			name = ""
		}
		if err == nil && isZero {
			teamZero = append(teamZero, name)
		} else {
			teamOne = append(teamOne, name)
		}
	}

	var globalHeaders []string
	for _, adder := range c.globals {
		globalHeaders = append(globalHeaders, adder.ColumnHeaders()...)
	}
	var playerHeaders []string
	for _, adder := range c.perPlayer {
		playerHeaders = append(playerHeaders, adder.ColumnHeaders()...)
	}

	c.meta = Meta{
		TeamZero:      teamZero,
		TeamOne:       teamOne,
		GlobalHeaders: globalHeaders,
		PlayerHeaders: playerHeaders,
		GlobalWidth:   c.globalWidth(),
		PlayerWidth:   c.playerWidth(),
		PlayerCount:   len(order),
	}
	c.metaCaptured = true
}

// GetMetaAndNDArray returns the completed meta and row-major matrix,
// validating the shape invariant from spec.md §4.9.
func (c *Collector) GetMetaAndNDArray() (Meta, []float32, error) {
	meta := c.meta
	meta.FramesAdded = c.framesAdded
	want := meta.FramesAdded * (meta.GlobalWidth + meta.PlayerCount*meta.PlayerWidth)
	if len(c.data) != want {
		return Meta{}, nil, replayerr.New(replayerr.CouldNotBuildReplayMeta,
			"ndarray shape mismatch: have %d values, want %d", len(c.data), want)
	}
	return meta, c.data, nil
}
