package timeline

import (
	"errors"
	"testing"

	"rocketreplay/internal/attribute"
)

func TestSeriesForPadsLateJoiningPlayer(t *testing.T) {
	c := NewCollector(Config{})
	playerA := attribute.PlayerId{Numeric: 1}
	playerB := attribute.PlayerId{Numeric: 2}

	// Simulate two frames with only playerA, then playerB joins at frame 2.
	c.result.Metadata = append(c.result.Metadata, MetadataFrame{}, MetadataFrame{}, MetadataFrame{})
	seriesA := c.seriesFor(playerA, 0)
	seriesA.Frames = append(seriesA.Frames, PlayerFrame{})
	seriesA = c.seriesFor(playerA, 1)
	seriesA.Frames = append(seriesA.Frames, PlayerFrame{})
	seriesA = c.seriesFor(playerA, 2)
	seriesA.Frames = append(seriesA.Frames, PlayerFrame{})

	seriesB := c.seriesFor(playerB, 2)
	if len(seriesB.Frames) != 2 {
		t.Fatalf("expected 2 leading empty frames for late joiner, got %d", len(seriesB.Frames))
	}
	for i, f := range seriesB.Frames {
		if !f.Empty {
			t.Fatalf("expected padding frame %d to be empty", i)
		}
	}
}

func TestResultReplayStopsOnFirstError(t *testing.T) {
	r := Result{
		Metadata: []MetadataFrame{{Time: 0}, {Time: 1}, {Time: 2}},
		Ball:     []BallFrame{{}, {}, {}},
	}
	var visited []int
	sentinel := errors.New("stop")
	err := r.Replay(func(index int, _ MetadataFrame, _ BallFrame, _ map[attribute.PlayerId]PlayerFrame) error {
		visited = append(visited, index)
		if index == 1 {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if len(visited) != 2 {
		t.Fatalf("expected iteration to stop after index 1, visited %v", visited)
	}
}

func TestResultReplayAlignsPlayerSeriesLength(t *testing.T) {
	r := Result{
		Metadata: []MetadataFrame{{}, {}, {}},
		Ball:     []BallFrame{{}, {}, {}},
		Players: []*PlayerSeries{
			{Player: attribute.PlayerId{Numeric: 1}, Frames: []PlayerFrame{{}, {}}},
		},
	}
	var lastIndex int
	err := r.Replay(func(index int, _ MetadataFrame, _ BallFrame, players map[attribute.PlayerId]PlayerFrame) error {
		lastIndex = index
		frame, ok := players[attribute.PlayerId{Numeric: 1}]
		if index == 2 {
			if !ok || !frame.Empty {
				t.Fatalf("expected synthesized empty frame past series length at index 2")
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lastIndex != 2 {
		t.Fatalf("expected to iterate through index 2, stopped at %d", lastIndex)
	}
}
