package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the process-wide logger.
type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // text, json
	Output     string `yaml:"output"` // stdout, stderr, file
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"` // MB
	MaxAge     int    `yaml:"max_age"`  // days
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
	Caller     bool   `yaml:"caller"`
}

// WithDefaults fills unset fields.
func (c Config) WithDefaults() Config {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	if c.Output == "file" && c.Filename == "" {
		c.Filename = "logs/quotechart.log"
	}
	if c.MaxSize == 0 {
		c.MaxSize = 100
	}
	if c.MaxAge == 0 {
		c.MaxAge = 30
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = 10
	}
	return c
}

// Setup configures the standard logrus logger and returns the writer it logs to.
func Setup(cfg Config) (io.Writer, error) {
	cfg = cfg.WithDefaults()

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)

	prettyCaller := func(f *runtime.Frame) (string, string) {
		return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
	}
	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyCaller,
		})
	case "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyCaller,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	log.SetReportCaller(cfg.Caller)

	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		out = &lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
	default:
		return nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}
	log.SetOutput(out)
	return out, nil
}
