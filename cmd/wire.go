package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bjornf-dev/stockscout/internal/adapters/analysis"
	"github.com/bjornf-dev/stockscout/internal/adapters/memorybank"
	renderreport "github.com/bjornf-dev/stockscout/internal/adapters/render/report"
	"github.com/bjornf-dev/stockscout/internal/adapters/reportgen"
	"github.com/bjornf-dev/stockscout/internal/adapters/research"
	"github.com/bjornf-dev/stockscout/internal/adapters/sessionstore"
	"github.com/bjornf-dev/stockscout/internal/adapters/telemetry"
	"github.com/bjornf-dev/stockscout/internal/application"
	"github.com/bjornf-dev/stockscout/internal/domain"
)

const configDirName = ".stockscout"

type app struct {
	pipeline          *application.PipelineService
	batch             *application.BatchService
	queries           *application.QueryService
	renderReport      func(domain.Report) string
	renderComparative func(domain.ComparativeReport) string
	now               func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	sessions := sessionstore.New(nil)

	memory, err := memorybank.New(cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("wire memory bank: %w", err)
	}

	researcher := research.NewClient(cfg, nil)
	analyzer := analysis.NewAnalyzer(memory, nil)
	reporter := reportgen.NewGenerator(nil)
	recorder := telemetry.NewRecorder(cfg, nil)

	pipeline := application.NewPipelineService(sessions, memory, researcher, analyzer, reporter, recorder, nil)

	return &app{
		pipeline:          pipeline,
		batch:             application.NewBatchService(sessions, pipeline, reporter, recorder, nil),
		queries:           application.NewQueryService(sessions, memory),
		renderReport:      renderreport.Render,
		renderComparative: renderreport.RenderComparative,
		now:               time.Now,
	}, nil
}

// loadConfig reads ~/.stockscout/config.toml when present and maps
// STOCKSCOUT_* environment variables over it. A missing config file is fine;
// every key has a default.
func loadConfig() (*viper.Viper, error) {
	cfg := viper.New()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.SetEnvPrefix("STOCKSCOUT")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}
