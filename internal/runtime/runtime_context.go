package runtime

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/engine"
	"github.com/devcat-io/devcat/internal/settings"
)

type Context struct {
	Logger     *zerolog.Logger
	Viper      *viper.Viper
	Settings   *settings.Settings
	Git        catalogrepo.Git
	CLIVersion string
	// TempDir overrides where checkouts are created. Empty means os.TempDir.
	TempDir string
}

func NewContext(logger *zerolog.Logger, viper *viper.Viper, cliVersion string) *Context {
	return &Context{
		Logger:     logger,
		Viper:      viper,
		Git:        catalogrepo.NewGitCLI(logger),
		CLIVersion: cliVersion,
	}
}

// SetLogger swaps the logger, for --verbose, keeping the git transport in step.
func (ctx *Context) SetLogger(logger *zerolog.Logger) {
	ctx.Logger = logger
	if _, ok := ctx.Git.(*catalogrepo.GitCLI); ok {
		ctx.Git = catalogrepo.NewGitCLI(logger)
	}
}

func (ctx *Context) AttachSettings() error {
	var err error

	ctx.Settings, err = settings.New(ctx.Logger, ctx.Viper)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	return nil
}

// NewEngine builds an engine for one command invocation.
func (ctx *Context) NewEngine() (*engine.Engine, error) {
	opts := []engine.Option{engine.WithCLIVersion(ctx.CLIVersion)}
	if ctx.TempDir != "" {
		opts = append(opts, engine.WithTempDir(ctx.TempDir))
	}
	e, err := engine.New(ctx.Logger, ctx.Git, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	return e, nil
}
