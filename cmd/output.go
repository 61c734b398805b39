package cmd

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(v))
}
