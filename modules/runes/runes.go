package runes

import (
	"context"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/internal/config"
	runesapi "github.com/gaze-network/runestone/modules/runes/api"
	runesusecase "github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/gaze-network/runestone/pkg/btcclient"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

// New creates the runestone usecase backed by the Bitcoin node and mounts the configured API handlers.
func New(injector do.Injector) (*runesusecase.Usecase, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)

	rpc, err := do.Invoke[*rpcclient.Client](injector)
	if err != nil {
		return nil, errors.Wrap(err, "can't create Bitcoin node client")
	}
	runesUsecase := runesusecase.New(btcclient.New(rpc), conf.Modules.Runes)

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.Runes.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			runesHTTPHandler := runesapi.NewHTTPHandler(conf.Network, runesUsecase)
			if err := runesHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount Runes API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	return runesUsecase, nil
}
