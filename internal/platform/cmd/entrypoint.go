package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/voicebridge/internal/platform/config"
	"github.com/louisbranch/voicebridge/internal/platform/logging"
	"github.com/louisbranch/voicebridge/internal/platform/otel"
	"github.com/louisbranch/voicebridge/internal/platform/timeouts"
	"go.uber.org/zap"
)

// ServiceSite names the marketing site service in telemetry and logs.
const ServiceSite = "site"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
	// Logger receives startup and shutdown diagnostics.
	Logger *zap.Logger
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// ParseConfigFromArgs loads defaults from env, lets bind register flags over
// them, and then parses args.
func ParseConfigFromArgs[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T)) error {
	if err := ParseConfig(cfg); err != nil {
		return err
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if bind != nil {
		bind(fs, cfg)
	}
	return ParseArgs(fs, args)
}

// RunWithTelemetry configures tracing and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.OrNop(options.Logger)
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = timeouts.TelemetryShutdown
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("otel shutdown", zap.Error(err))
		}
	}()
	return run(ctx)
}
