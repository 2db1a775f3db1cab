package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/xyproto/env/v2"
)

// logLevelVar is a pflag.Value backed by a slog.LevelVar.
type logLevelVar struct {
	levelVar *slog.LevelVar
	set      bool
}

func (v *logLevelVar) String() string {
	if v.levelVar == nil {
		return ""
	}
	return strings.ToLower(v.levelVar.Level().String())
}

func (v *logLevelVar) Set(s string) error {
	level, err := parseLogLevel(s)
	if err != nil {
		return err
	}
	v.levelVar.Set(level)
	v.set = true
	return nil
}

func (v *logLevelVar) Type() string { return "level" }

// level returns the flag value when given, else the environment default.
func (v *logLevelVar) level() slog.Level {
	if v.set {
		return v.levelVar.Level()
	}
	return resolveLogLevel("")
}

func addLogLevelFlag(fs *pflag.FlagSet) *logLevelVar {
	v := &logLevelVar{levelVar: new(slog.LevelVar)}
	v.levelVar.Set(slog.LevelWarn)
	fs.Var(v, "log-level", "set log level (debug, info, warn, error)")
	return v
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level: %s", s)
	}
}

// resolveLogLevel picks configured (a manifest's log_level) when set, then
// $MATLANG_LOG, then warn.
func resolveLogLevel(configured string) slog.Level {
	name := configured
	if name == "" {
		name = env.Str("MATLANG_LOG", "warn")
	}
	level, err := parseLogLevel(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using warn\n", err)
	}
	return level
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
