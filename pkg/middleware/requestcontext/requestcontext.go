package requestcontext

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

// Option derives a new request context from the incoming request.
type Option func(ctx context.Context, c *fiber.Ctx) (context.Context, error)

// New applies opts in order and stores the result as the fiber user context.
func New(opts ...Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		for i, opt := range opts {
			next, err := opt(ctx, c)
			if err != nil {
				var rErr requestcontextError
				if errors.As(err, &rErr) {
					return errors.WithStack(c.Status(rErr.status).JSON(common.HttpResponse[any]{Error: lo.ToPtr(rErr.message)}))
				}

				logger.ErrorContext(ctx, "failed to extract request context",
					slogx.Error(err),
					slogx.String("event", "requestcontext/error"),
					slogx.Int("option_index", i),
				)
				return errors.WithStack(c.Status(http.StatusInternalServerError).JSON(common.HttpResponse[any]{Error: lo.ToPtr("internal server error")}))
			}
			ctx = next
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}
