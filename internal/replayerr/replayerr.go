// Package replayerr defines the closed taxonomy of failures the replay
// processor and its collaborators can return.
package replayerr

import (
	"fmt"
	"runtime"
)

// Kind enumerates every fallible outcome the processor exposes. The set is
// closed: callers switch on Kind rather than matching on error strings.
type Kind int

const (
	// Structural
	NoNetworkFrames Kind = iota
	FrameIndexOutOfBounds

	// Actor-state
	ActorIdAlreadyExists
	NoStateForActorId
	UpdatedActorIdDoesNotExist

	// Lookup
	ObjectIdNotFound
	PropertyNotFoundInState
	DerivedKeyValueNotFound
	BallActorNotFound
	NoGameActor
	ActorNotFound
	NoMatchingPlayerId

	// Type
	UnexpectedAttributeType
	FloatConversionError

	// Semantic
	UnknownPlayerTeam
	UnknownTeamObjectId
	EmptyTeamName
	InterpolationTimeOrderError
	NoUpdateAfterFrame
	InconsistentPlayerSet
	CouldNotBuildReplayMeta
	PlayerStatsHeaderNotFound

	// Config
	UnknownFeatureAdderName

	// Control (internal sentinel, never surfaced to callers)
	FinishProcessingEarly
)

var kindNames = map[Kind]string{
	NoNetworkFrames:             "NoNetworkFrames",
	FrameIndexOutOfBounds:       "FrameIndexOutOfBounds",
	ActorIdAlreadyExists:        "ActorIdAlreadyExists",
	NoStateForActorId:           "NoStateForActorId",
	UpdatedActorIdDoesNotExist:  "UpdatedActorIdDoesNotExist",
	ObjectIdNotFound:            "ObjectIdNotFound",
	PropertyNotFoundInState:     "PropertyNotFoundInState",
	DerivedKeyValueNotFound:     "DerivedKeyValueNotFound",
	BallActorNotFound:           "BallActorNotFound",
	NoGameActor:                 "NoGameActor",
	ActorNotFound:               "ActorNotFound",
	NoMatchingPlayerId:          "NoMatchingPlayerId",
	UnexpectedAttributeType:     "UnexpectedAttributeType",
	FloatConversionError:        "FloatConversionError",
	UnknownPlayerTeam:           "UnknownPlayerTeam",
	UnknownTeamObjectId:         "UnknownTeamObjectId",
	EmptyTeamName:               "EmptyTeamName",
	InterpolationTimeOrderError: "InterpolationTimeOrderError",
	NoUpdateAfterFrame:          "NoUpdateAfterFrame",
	InconsistentPlayerSet:       "InconsistentPlayerSet",
	CouldNotBuildReplayMeta:     "CouldNotBuildReplayMeta",
	PlayerStatsHeaderNotFound:   "PlayerStatsHeaderNotFound",
	UnknownFeatureAdderName:     "UnknownFeatureAdderName",
	FinishProcessingEarly:       "FinishProcessingEarly",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownKind"
}

// Error is the concrete error type returned across the replay core. It
// carries the failure Kind, a human-readable message, and a captured stack
// so callers can locate the originating call site without re-running with a
// debugger attached.
type Error struct {
	Kind    Kind
	Message string
	Stack   []uintptr
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error of the given Kind, capturing the caller's stack.
func New(kind Kind, format string, args ...any) *Error {
	const maxFrames = 32
	pcs := make([]uintptr, maxFrames)
	// skip New and runtime.Callers' own frame.
	n := runtime.Callers(2, pcs)
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Stack:   pcs[:n],
	}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// FinishEarly is a shared sentinel instance of FinishProcessingEarly. The
// player-order discovery pre-pass in replayproc stops at its frame limit
// without returning it.
var FinishEarly = New(FinishProcessingEarly, "discovery pre-pass budget exhausted")
