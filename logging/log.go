// Copyright (c) 2022 Gobalsky Labs Limited
//
// Use of this software is governed by the Business Source License included
// in the LICENSE.VEGA file and at https://www.mariadb.com/bsl11.
//
// Change Date: 18 months from the later of the date of the first publicly
// available Distribution of this version of the repository, and 25 June 2022.
//
// On the date above, in accordance with the Business Source License, use
// of this software will be governed by version 3 or later of the GNU General
// Public License.

package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level int8

// Logging levels (matching zap core internals).
const (
	// DebugLevel logs are typically voluminous, and are usually disabled in
	// production.
	DebugLevel Level = -1
	// InfoLevel is the default logging priority.
	InfoLevel Level = 0
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel Level = 1
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel Level = 2
	// PanicLevel logs a message, then panics.
	PanicLevel Level = 4
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel Level = 5
)

// ParseLevel returns the level matching the given string, this is used
// to read levels from the toml configuration.
func ParseLevel(l string) (Level, error) {
	switch strings.ToLower(l) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "panic":
		return PanicLevel, nil
	case "fatal":
		return FatalLevel, nil
	}
	return Level(0), fmt.Errorf("invalid log level: %v", l)
}

func (l Level) String() string {
	return l.ZapLevel().String()
}

func (l Level) ZapLevel() zapcore.Level {
	return zapcore.Level(l)
}

// Logger is a thin wrapper over a zap logger which keeps hold of its
// config so the level can be changed, and the logger cloned/named, at
// runtime.
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

func (log *Logger) Clone() *Logger {
	newConfig := cloneConfig(log.config)
	newLogger, err := newConfig.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{
		Logger: newLogger,
		config: newConfig,
		name:   log.name,
	}
}

func (log *Logger) GetLevel() Level {
	return (Level)(log.config.Level.Level())
}

func (log *Logger) GetName() string {
	return log.name
}

func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	newName := name
	if log.name != "" {
		newName = fmt.Sprintf("%s.%s", log.name, name)
	}
	return &Logger{
		Logger: c.Logger.Named(newName),
		config: c.config,
		name:   newName,
	}
}

func (log *Logger) SetLevel(level Level) {
	lvl := (zapcore.Level)(level)
	if log.config.Level.Level() == lvl {
		return
	}
	log.config.Level.SetLevel(lvl)
}

func (log *Logger) With(fields ...zap.Field) *Logger {
	c := log.Clone()
	return &Logger{
		Logger: c.Logger.With(fields...),
		config: c.config,
		name:   log.name,
	}
}

// AtExit flushes the logs before exiting the process. This is meant to
// be used with defer when initializing your logger.
func (log *Logger) AtExit() {
	if log.Logger != nil {
		log.Logger.Sync()
	}
}

// IsDebug returns true if the logger level is less than or equal to
// debug, used by the engines to guard verbose log statements.
func (log *Logger) IsDebug() bool {
	return log.GetLevel() <= DebugLevel
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Sampling:          nil,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     make(map[string]interface{}),
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	if cfg.Sampling != nil {
		c.Sampling = &zap.SamplingConfig{
			Initial:    cfg.Sampling.Initial,
			Thereafter: cfg.Sampling.Thereafter,
		}
	}
	return &c
}

// NewLoggerFromEnv creates a logger from the given environment, "dev"
// gets a human readable console logger at debug level, anything else a
// JSON logger at info level.
func NewLoggerFromEnv(env string) *Logger {
	if env == "dev" {
		return NewDevLogger()
	}
	return NewProdLogger()
}

// NewDevLogger creates a console logger at debug level.
func NewDevLogger() *Logger {
	encoderConfig := zapcore.EncoderConfig{
		CallerKey:      "C",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		LevelKey:       "L",
		LineEnding:     "\n",
		MessageKey:     "M",
		NameKey:        "N",
		TimeKey:        "T",
	}
	config := &zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.Level(DebugLevel)),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig), os.Stdout, config.Level)
	return &Logger{
		Logger: zap.New(core),
		config: config,
	}
}

// NewProdLogger creates a JSON logger at info level.
func NewProdLogger() *Logger {
	encoderConfig := zapcore.EncoderConfig{
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		LevelKey:       "level",
		LineEnding:     "\n",
		MessageKey:     "message",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		TimeKey:        "@timestamp",
	}
	config := &zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.Level(InfoLevel)),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig), os.Stdout, config.Level)
	return &Logger{
		Logger: zap.New(core),
		config: config,
	}
}

// NewTestLogger creates a logger at info level for use in tests.
func NewTestLogger() *Logger {
	log := NewDevLogger()
	log.SetLevel(InfoLevel)
	return log
}
