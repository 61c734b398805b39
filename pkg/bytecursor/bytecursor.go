// Package bytecursor provides a forward-only reader over a byte slice.
package bytecursor

import (
	"io"

	"github.com/gaze-network/runestone/common/errs"
)

const ErrOutOfData = errs.ErrorKind("bytecursor: out of data")

var _ io.ByteReader = (*Cursor)(nil)

// Cursor reads a byte slice sequentially. It never seeks backward.
type Cursor struct {
	data []byte
	pos  int
}

func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// IsFinished reports whether every byte has been read.
func (c *Cursor) IsFinished() bool {
	return c.pos >= len(c.data)
}

// ReadByte returns the next byte and advances the cursor.
func (c *Cursor) ReadByte() (byte, error) {
	if c.IsFinished() {
		return 0, ErrOutOfData
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// Position returns the number of bytes read so far.
func (c *Cursor) Position() int {
	return c.pos
}
