package schelling

// Cell enumerates the values a grid cell may hold.
type Cell uint8

const (
	Empty Cell = iota
	TypeA
	TypeB
)

// Valid reports whether c is one of the enumerated cell values.
func (c Cell) Valid() bool { return c <= TypeB }

// Occupied reports whether c holds an agent.
func (c Cell) Occupied() bool { return c == TypeA || c == TypeB }

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case TypeA:
		return "a"
	case TypeB:
		return "b"
	default:
		return "invalid"
	}
}

// Rune returns a single-character representation used by text renderers.
func (c Cell) Rune() rune {
	switch c {
	case TypeA:
		return 'A'
	case TypeB:
		return 'B'
	default:
		return '.'
	}
}
