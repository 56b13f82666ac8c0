package launcher

import (
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-reclaim/integration"
)

// env is what every command runs against.
type env struct {
	cfg    Config
	log    *logrus.Logger
	engine *integration.Engine
}

func openEnv(ctx *cli.Context) (*env, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	logger, err := makeLogger(cfg, ctx.App.ErrWriter)
	if err != nil {
		return nil, err
	}
	preset, err := integration.GetPresetByName(cfg.Storage.Preset)
	if err != nil {
		return nil, err
	}
	if preset.Backend == integration.BackendPebble {
		if err := ensureDir(cfg.Node.DataDir); err != nil {
			return nil, err
		}
	}
	entry := logger.WithField("node", cfg.Node.Name)
	engine, err := integration.MakeEngine(preset, cfg.Node.DataDir, entry)
	if err != nil {
		entry.WithError(err).Error("Failed to open registry")
		return nil, err
	}
	return &env{cfg: cfg, log: logger, engine: engine}, nil
}

func (e *env) Close() error {
	return e.engine.Close()
}

// withEnv adapts a command body to a cli action, closing the engine after.
func withEnv(run func(ctx *cli.Context, e *env) error) func(ctx *cli.Context) error {
	return func(ctx *cli.Context) error {
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()
		return run(ctx, e)
	}
}
