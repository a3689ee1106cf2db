package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/config"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/factory"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/logger"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

const serviceName = "content-engine"

// app carries what every command needs. The engine is built on first use so
// commands like analyze never touch storage.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	out     io.Writer
	in      io.Reader
	envFile string
	engine  *factory.Engine
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	if a.cfg != nil {
		return nil
	}
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", a.envFile, err)
	}
	cfg, err := config.New()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.NewWithLevel(os.Stderr, serviceName, cfg.LogLevel)
	return nil
}

func (a *app) getEngine(ctx context.Context) (*factory.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	eng, err := factory.NewEngine(ctx, a.cfg, a.log)
	if err != nil {
		a.log.Error().Stack().Err(err).Str("driver", a.cfg.DBDriver).Msg("engine init failed")
		return nil, errUnavailable
	}
	a.engine = eng
	return eng, nil
}

func (a *app) close() {
	if a.engine == nil {
		return
	}
	if err := a.engine.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close store")
	}
	a.engine = nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var errUnavailable = errors.New("storage or embedding provider unavailable; try again later")

// userError keeps caller mistakes verbatim and hides infrastructure detail,
// which is logged instead.
func (a *app) userError(err error) error {
	if err == nil {
		return nil
	}
	var batch *model.BatchError
	switch {
	case errors.As(err, &batch):
		return fmt.Errorf("batch stopped at index %d after %d stored: %w", batch.FailedIndex, len(batch.Stored), a.userError(batch.Err))
	case model.IsValidationError(err), model.IsNotFoundError(err), model.IsAnalysisError(err), model.IsConcurrencyError(err):
		return err
	case errors.Is(err, errUnavailable):
		return err
	case model.IsEmbeddingError(err):
		a.log.Error().Stack().Err(err).Msg("embedding failed")
		return errors.New("embedding provider failed; try again later")
	}
	a.log.Error().Stack().Err(err).Msg("command failed")
	return errUnavailable
}

// readText returns text, or the contents of file when text is empty. "-" reads stdin.
func (a *app) readText(text, file string) (string, error) {
	switch {
	case text != "" && file != "":
		return "", model.NewValidationError("text", "use either --text or --file")
	case text != "":
		return text, nil
	case file == "-":
		b, err := io.ReadAll(a.in)
		return string(b), err
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", model.NewValidationError("file", err.Error())
		}
		return string(b), nil
	}
	return "", model.NewValidationError("text", "is required (--text or --file)")
}

// withEngine adapts a command body that needs storage into a RunE.
func (a *app) withEngine(run func(ctx context.Context, eng *factory.Engine) (interface{}, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		eng, err := a.getEngine(cmd.Context())
		if err != nil {
			return err
		}
		res, err := run(cmd.Context(), eng)
		if err != nil {
			return a.userError(err)
		}
		return a.print(res)
	}
}
