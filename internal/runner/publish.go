package runner

import (
	"fmt"
	"io"

	"itercommit/internal/engine"
)

// Publisher is a host's "declare public value" facility: one call per word,
// in index order.
type Publisher interface {
	Declare(index int, word uint32) error
}

// Publish declares every word of c through p.
func Publish(c engine.Commitment, p Publisher) error {
	for i, w := range c.Words {
		if err := p.Declare(i, w); err != nil {
			return fmt.Errorf("declare output %d: %w", i, err)
		}
	}
	return nil
}

// WriterPublisher prints one "output[i] = 0x........" line per word.
type WriterPublisher struct {
	W io.Writer
}

func (p WriterPublisher) Declare(index int, word uint32) error {
	_, err := fmt.Fprintf(p.W, "output[%d] = 0x%08x\n", index, word)
	return err
}
