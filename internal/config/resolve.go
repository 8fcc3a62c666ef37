package config

import (
	"errors"
	"log/slog"
)

// Source tells which branch produced a resolved Record.
type Source int

const (
	SourceFlags Source = iota // defaults overlaid with command-line values
	SourceFile                // a configuration file, taken wholesale
)

func (s Source) String() string {
	if s == SourceFile {
		return "file"
	}
	return "flags"
}

// Resolver merges the configuration sources of one invocation.
type Resolver struct {
	defaults Record
	log      *slog.Logger
}

// NewResolver creates a Resolver over a default record. A nil logger
// uses slog.Default().
func NewResolver(defaults Record, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{defaults: defaults, log: logger}
}

// Resolve produces the effective configuration.
//
// If cfgPath names an existing file, that file is the whole configuration
// and neither flags nor defaults are merged into it. A missing file is not
// an error: resolution falls through to the defaults overlaid with flags.
// flags is expected to carry every command-line value, user-supplied or
// flag default.
func (r *Resolver) Resolve(flags Record, cfgPath string) (Record, Source, error) {
	if cfgPath != "" {
		rec, err := LoadFile(cfgPath)
		switch {
		case err == nil:
			r.log.Info("Using config file", "path", cfgPath)
			r.audit(rec)
			return rec, SourceFile, nil
		case errors.Is(err, ErrConfigNotFound):
			r.log.Debug("config file not found, using command-line values", "path", cfgPath)
		default:
			return Record{}, SourceFlags, err
		}
	}

	rec := r.defaults.Overlay(flags)
	r.audit(rec)
	return rec, SourceFlags, nil
}

func (r *Resolver) audit(rec Record) {
	for _, k := range rec.Keys() {
		v, _ := rec.Get(k)
		r.log.Info("config", "key", k, "value", v.String())
	}
}
