package bytecursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		c := New(nil)
		assert.True(t, c.IsFinished())
		_, err := c.ReadByte()
		assert.ErrorIs(t, err, ErrOutOfData)
	})

	t.Run("reads forward", func(t *testing.T) {
		c := New([]byte{1, 2, 3})
		for i, expected := range []byte{1, 2, 3} {
			assert.False(t, c.IsFinished())
			b, err := c.ReadByte()
			assert.NoError(t, err)
			assert.Equal(t, expected, b)
			assert.Equal(t, i+1, c.Position())
		}
		assert.True(t, c.IsFinished())
		_, err := c.ReadByte()
		assert.ErrorIs(t, err, ErrOutOfData)
		assert.Equal(t, 3, c.Position())
	})
}
