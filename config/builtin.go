package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/treelog/treelog/appender"
	"github.com/treelog/treelog/core"
	"github.com/treelog/treelog/filter"
)

func init() {
	RegisterAppender("console", newConsoleAppender)
	RegisterAppender("writer", newConsoleAppender)
	RegisterAppender("memory", func(name string, _ Params) (appender.Appender, error) {
		return appender.NewMemory(name), nil
	})
	RegisterAppender("zap", newZapAppender)
	RegisterAppender("zerolog", newZerologAppender)
	RegisterAppender("logrus", newLogrusAppender)

	RegisterFilter("levelRange", newLevelRangeFilter)
	RegisterFilter("levelMatch", newLevelMatchFilter)
	RegisterFilter("stringMatch", newStringMatchFilter)
	RegisterFilter("denyAll", func(Params) (filter.Filter, error) {
		return filter.DenyAll{}, nil
	})
}

func newConsoleAppender(name string, p Params) (appender.Appender, error) {
	cfg := appender.WriterConfig{Name: name}
	switch target := p.Get("target", "stderr"); target {
	case "stderr":
		cfg.Target = os.Stderr
	case "stdout":
		cfg.Target = os.Stdout
	default:
		return nil, fmt.Errorf("console appender: unknown target %q", target)
	}
	switch layout := p.Get("layout", "text"); layout {
	case "text":
		cfg.Layout = &appender.TextLayout{TimestampFormat: p.Get("timestampFormat", "")}
	case "json":
		cfg.Layout = appender.JSONLayout{}
	default:
		return nil, fmt.Errorf("console appender: unknown layout %q", layout)
	}
	return appender.NewWriter(cfg), nil
}

func newZapAppender(name string, p Params) (appender.Appender, error) {
	var zl *zap.Logger
	var err error
	switch preset := p.Get("preset", "production"); preset {
	case "production":
		zl, err = zap.NewProduction()
	case "development":
		zl, err = zap.NewDevelopment()
	default:
		return nil, fmt.Errorf("zap appender: unknown preset %q", preset)
	}
	if err != nil {
		return nil, fmt.Errorf("zap appender: %w", err)
	}
	return appender.NewZapBridge(name, zl.Core()), nil
}

func newZerologAppender(name string, p Params) (appender.Appender, error) {
	zl := zerolog.New(os.Stderr)
	if p.Get("console", "false") == "true" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return appender.NewZerologBridge(name, zl), nil
}

func newLogrusAppender(name string, p Params) (appender.Appender, error) {
	lr := logrus.New()
	lr.SetLevel(logrus.TraceLevel) // treelog's hierarchy does the filtering
	if p.Get("format", "text") == "json" {
		lr.SetFormatter(&logrus.JSONFormatter{})
	}
	return appender.NewLogrusBridge(name, lr), nil
}

func newLevelRangeFilter(p Params) (filter.Filter, error) {
	min, ok := core.ParseLevel(p.Get("min", "ALL"))
	if !ok {
		return nil, fmt.Errorf("levelRange filter: bad min level %q", p["min"])
	}
	max, ok := core.ParseLevel(p.Get("max", "OFF"))
	if !ok {
		return nil, fmt.Errorf("levelRange filter: bad max level %q", p["max"])
	}
	return &filter.LevelRange{
		Min:           min,
		Max:           max,
		AcceptOnMatch: p.Get("acceptOnMatch", "true") == "true",
	}, nil
}

func newLevelMatchFilter(p Params) (filter.Filter, error) {
	level, ok := core.ParseLevel(p.Get("level", ""))
	if !ok {
		return nil, fmt.Errorf("levelMatch filter: bad level %q", p["level"])
	}
	return &filter.LevelMatch{
		Level:         level,
		AcceptOnMatch: p.Get("acceptOnMatch", "true") == "true",
	}, nil
}

func newStringMatchFilter(p Params) (filter.Filter, error) {
	substr := p.Get("substr", "")
	if substr == "" {
		return nil, fmt.Errorf("stringMatch filter: substr is required")
	}
	return &filter.StringMatch{
		Substr:        substr,
		AcceptOnMatch: p.Get("acceptOnMatch", "true") == "true",
	}, nil
}
