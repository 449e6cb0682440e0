package schelling

import (
	"errors"
	"testing"

	"schelling/internal/core"
)

func TestRelocateMovesEveryUnhappyAgentOnce(t *testing.T) {
	g, err := Initialize(30, 0.2, 0.5, core.NewRNG(5))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	before := g.Snapshot()
	unhappy, empty := Identify(g, 0.4)
	if len(unhappy) == 0 {
		t.Fatal("fixture should contain unhappy agents")
	}

	moves, err := Relocate(g, unhappy, empty, core.NewRNG(6))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if len(moves) != len(unhappy) {
		t.Fatalf("performed %d moves for %d unhappy agents", len(moves), len(unhappy))
	}

	destinations := make(map[Coord]bool, len(moves))
	for i, mv := range moves {
		if mv.From != unhappy[i] {
			t.Fatalf("move %d starts at %v, want %v", i, mv.From, unhappy[i])
		}
		if mv.Cell != before.At(mv.From) {
			t.Fatalf("move %d carried %v, origin held %v", i, mv.Cell, before.At(mv.From))
		}
		if destinations[mv.To] {
			t.Fatalf("destination %v used twice in one pass", mv.To)
		}
		destinations[mv.To] = true
	}
	for _, mv := range moves {
		if got := g.At(mv.To); got != mv.Cell {
			t.Fatalf("destination %v holds %v, want %v", mv.To, got, mv.Cell)
		}
		if !destinations[mv.From] && g.At(mv.From) != Empty {
			t.Fatalf("vacated origin %v holds %v", mv.From, g.At(mv.From))
		}
	}
	if g.Counts() != before.Counts() {
		t.Fatalf("relocation changed counts: %+v -> %+v", before.Counts(), g.Counts())
	}
}

func TestRelocateReusesVacatedOrigin(t *testing.T) {
	g := gridFromRows(t,
		"AB",
		".A",
	)
	unhappy := []Coord{{0, 0}, {0, 1}}
	empty := []Coord{{1, 0}}

	moves, err := Relocate(g, unhappy, empty, core.NewRNG(1))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	want := []Move{
		{From: Coord{0, 0}, To: Coord{1, 0}, Cell: TypeA},
		{From: Coord{0, 1}, To: Coord{0, 0}, Cell: TypeB},
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Fatalf("move %d = %+v, want %+v", i, moves[i], want[i])
		}
	}
	expect := gridFromRows(t,
		"B.",
		"AA",
	)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			at := Coord{r, c}
			if g.At(at) != expect.At(at) {
				t.Fatalf("cell %v = %v, want %v", at, g.At(at), expect.At(at))
			}
		}
	}
}

func TestRelocateWithoutEmptyCells(t *testing.T) {
	g := gridFromRows(t,
		"AB",
		"BA",
	)
	unhappy, empty := Identify(g, 0.4)
	if len(unhappy) == 0 || len(empty) != 0 {
		t.Fatalf("fixture expects unhappy agents and no space, got %v / %v", unhappy, empty)
	}
	if _, err := Relocate(g, unhappy, empty, core.NewRNG(1)); !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("expected ErrNoCapacity, got %v", err)
	}
}
