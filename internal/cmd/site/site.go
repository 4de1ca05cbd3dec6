// Package site parses site command configuration and starts the service.
package site

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/louisbranch/voicebridge/internal/inquiry"
	"github.com/louisbranch/voicebridge/internal/inquiry/intake"
	"github.com/louisbranch/voicebridge/internal/inquiry/storage/memory"
	"github.com/louisbranch/voicebridge/internal/inquiry/storage/sqlite"
	entrypoint "github.com/louisbranch/voicebridge/internal/platform/cmd"
	"github.com/louisbranch/voicebridge/internal/platform/logging"
	"github.com/louisbranch/voicebridge/internal/platform/timeouts"
	sitesvc "github.com/louisbranch/voicebridge/internal/services/site"
	"github.com/louisbranch/voicebridge/internal/services/site/module"
	"github.com/louisbranch/voicebridge/internal/services/site/platform/requestmeta"
	"github.com/louisbranch/voicebridge/internal/services/site/templates"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds site command configuration.
type Config struct {
	HTTPAddr            string        `env:"VOICEBRIDGE_SITE_HTTP_ADDR" envDefault:"localhost:8080"`
	InquiryBaseURL      string        `env:"VOICEBRIDGE_INQUIRY_BASE_URL" envDefault:"http://localhost:8000"`
	InquiryTimeout      time.Duration `env:"VOICEBRIDGE_INQUIRY_TIMEOUT"`
	Store               string        `env:"VOICEBRIDGE_SITE_STORE" envDefault:"memory"`
	SQLitePath          string        `env:"VOICEBRIDGE_SITE_SQLITE_PATH" envDefault:"data/site.db"`
	SessionTTL          time.Duration `env:"VOICEBRIDGE_SITE_SESSION_TTL" envDefault:"24h"`
	TrustForwardedProto bool          `env:"VOICEBRIDGE_SITE_TRUST_FORWARDED_PROTO"`
	LogLevel            string        `env:"VOICEBRIDGE_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"VOICEBRIDGE_LOG_FORMAT" envDefault:"json"`
	DownloadWindowsURL  string        `env:"VOICEBRIDGE_DOWNLOAD_WINDOWS_URL"`
	DownloadMacOSURL    string        `env:"VOICEBRIDGE_DOWNLOAD_MACOS_URL"`
	DownloadIOSURL      string        `env:"VOICEBRIDGE_DOWNLOAD_IOS_URL"`
	DownloadAndroidURL  string        `env:"VOICEBRIDGE_DOWNLOAD_ANDROID_URL"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, bindFlags); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if cfg.Store != StoreMemory && cfg.Store != StoreSQLite {
		return Config{}, fmt.Errorf("unknown store %q", cfg.Store)
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.InquiryBaseURL, "inquiry-base-url", cfg.InquiryBaseURL, "Inquiry intake service base URL")
	fs.DurationVar(&cfg.InquiryTimeout, "inquiry-timeout", cfg.InquiryTimeout, "Inquiry submission timeout (0 uses the transport default)")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Wizard session store: memory or sqlite")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite database path for the sqlite store")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
}

// Downloads returns the configured installer links by platform.
func (c Config) Downloads() []templates.DownloadLink {
	return []templates.DownloadLink{
		{Platform: "windows", URL: strings.TrimSpace(c.DownloadWindowsURL)},
		{Platform: "macos", URL: strings.TrimSpace(c.DownloadMacOSURL)},
		{Platform: "ios", URL: strings.TrimSpace(c.DownloadIOSURL)},
		{Platform: "android", URL: strings.TrimSpace(c.DownloadAndroidURL)},
	}
}

// Run starts the site service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(entrypoint.ServiceSite, cfg.LogLevel, logging.Format(cfg.LogFormat))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSite, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := intake.NewClient(intake.Config{BaseURL: cfg.InquiryBaseURL, Timeout: cfg.InquiryTimeout})
	if err != nil {
		return fmt.Errorf("init inquiry client: %w", err)
	}
	wizard, err := inquiry.NewService(store, client,
		inquiry.WithLogger(logger.Named("inquiry")),
		inquiry.WithSessionTTL(cfg.SessionTTL),
	)
	if err != nil {
		return fmt.Errorf("init inquiry wizard: %w", err)
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go wizard.RunJanitor(janitorCtx, timeouts.SessionSweep)

	server, err := sitesvc.NewServer(ctx, sitesvc.Config{
		HTTPAddr: cfg.HTTPAddr,
		Dependencies: module.Dependencies{
			Wizard:       wizard,
			Downloads:    cfg.Downloads(),
			SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
			SessionTTL:   cfg.SessionTTL,
			Logger:       logger,
		},
	})
	if err != nil {
		return fmt.Errorf("init site server: %w", err)
	}
	defer server.Close()

	logger.Info("inquiry intake configured",
		zap.String("endpoint", client.Endpoint()),
		zap.String("store", cfg.Store),
	)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve site: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg Config) (inquiry.Store, func(), error) {
	switch cfg.Store {
	case StoreSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open wizard store: %w", err)
		}
		return store, func() { _ = store.Close() }, nil
	case StoreMemory, "":
		return memory.NewStore(nil), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
