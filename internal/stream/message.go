package stream

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"schelling/internal/runner"
)

// maxSide bounds frame dimensions so Width*Height cannot overflow.
const maxSide = 1 << 15

// Message is the msgpack payload of one binary websocket frame.
type Message struct {
	Iteration int     `msgpack:"iteration" json:"iteration"`
	Unhappy   int     `msgpack:"unhappy" json:"unhappy"`
	Width     int     `msgpack:"width" json:"width"`
	Height    int     `msgpack:"height" json:"height"`
	Cells     []uint8 `msgpack:"cells" json:"-"`
}

func messageFromFrame(f runner.Frame) Message {
	return Message{
		Iteration: f.Iteration,
		Unhappy:   f.Unhappy,
		Width:     f.Size.W,
		Height:    f.Size.H,
		Cells:     f.Cells,
	}
}

// Encode serializes m for the wire.
func Encode(m Message) ([]byte, error) {
	data, err := msgpack.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("encoding frame: %w", err)
	}
	return data, nil
}

// Decode parses a binary frame received from the hub.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("decoding frame: %w", err)
	}
	if m.Width < 0 || m.Width > maxSide || m.Height < 0 || m.Height > maxSide || len(m.Cells) != m.Width*m.Height {
		return Message{}, fmt.Errorf("decoding frame: %d cells for %dx%d", len(m.Cells), m.Width, m.Height)
	}
	return m, nil
}
