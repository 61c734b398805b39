package automaxprocs

import (
	"fmt"
	"os"
	"runtime"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

var undo func()

// Init sets GOMAXPROCS to the container CPU quota, if any.
func Init() error {
	log := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", runtime.GOMAXPROCS(0)),
	)

	revert, err := maxprocs.Set(maxprocs.Min(1), maxprocs.Logger(func(format string, v ...any) {
		args := make([]any, 0, 1)
		// the undo callback logs without a value
		if val, ok := utils.Optional(v); ok {
			if _, exists := os.LookupEnv("GOMAXPROCS"); exists {
				val = runtime.GOMAXPROCS(0)
			}
			if n, ok := val.(int); ok {
				args = append(args, slogx.Int("set_maxprocs", n))
			}
		}
		log.Info(fmt.Sprintf(format, v...), args...)
	}))
	if err != nil {
		return errors.WithStack(err)
	}
	undo = revert
	return nil
}

// Undo restores GOMAXPROCS to the value it had before Init.
func Undo() {
	if undo != nil {
		undo()
	}
}
