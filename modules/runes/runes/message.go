package runes

import (
	"github.com/gaze-network/runestone/pkg/uint128utils"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

// Fields holds the tag/value pairs of a message. Only the first value of each tag is kept.
type Fields map[Tag]uint128.Uint128

// Take removes the value of tag from the fields and returns it, or nil if the tag is absent.
func (fields Fields) Take(tag Tag) *uint128.Uint128 {
	value, ok := fields[tag]
	if !ok {
		return nil
	}
	delete(fields, tag)
	return &value
}

type Message struct {
	Fields Fields
	Edicts []Edict
}

// MessageFromIntegers groups decoded integers into fields and edicts. Trailing data that does not form
// a complete tag/value pair or a complete edict is dropped.
func MessageFromIntegers(integers []uint128.Uint128) Message {
	fields := make(Fields)
	var edicts []Edict

	for i := 0; i < len(integers); i += 2 {
		tag := Tag(integers[i])

		if tag == TagBody {
			id := uint128.Zero
			for _, chunk := range lo.Chunk(integers[i+1:], 3) {
				if len(chunk) != 3 {
					break
				}
				id = uint128utils.SaturatingAdd(id, chunk[0])
				edicts = append(edicts, Edict{
					Id:     id,
					Amount: chunk[1],
					Output: chunk[2],
				})
			}
			break
		}

		// truncated field
		if i+1 >= len(integers) {
			break
		}
		if _, ok := fields[tag]; !ok {
			fields[tag] = integers[i+1]
		}
	}

	return Message{
		Fields: fields,
		Edicts: edicts,
	}
}
