package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ChuLiYu/epub-pager/internal/config"
)

var (
	// ErrInvalidChoice is returned for an enum flag outside its choices.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrConflictingFlags is returned when --x and --no-x are both given.
	ErrConflictingFlags = errors.New("conflicting flags")
)

const negationPrefix = "no-"

// registerOptionFlags declares one flag per recognized option. Boolean
// options also get a --no-<name> form.
func registerOptionFlags(fs *pflag.FlagSet) {
	for _, o := range config.Options() {
		usage := o.Usage
		if len(o.Choices) > 0 {
			usage += " (" + strings.Join(o.Choices, ", ") + ")"
		}
		switch o.Kind {
		case config.KindBool:
			fs.Bool(o.Name, o.Flag.Bool(), usage)
			fs.Bool(negationPrefix+o.Name, false, "disable --"+o.Name)
		case config.KindInt:
			fs.Int(o.Name, o.Flag.Int(), usage)
		default:
			fs.String(o.Name, o.Flag.Str(), usage)
		}
	}
}

// flagRecord reads every option flag into a Record. Values the user did not
// pass carry their flag default; an option without a flag default is left
// out unless the user set it.
func flagRecord(fs *pflag.FlagSet) (config.Record, error) {
	values := make(map[string]config.Value)
	for _, o := range config.Options() {
		switch o.Kind {
		case config.KindBool:
			neg := negationPrefix + o.Name
			if fs.Changed(o.Name) && fs.Changed(neg) {
				return config.Record{}, fmt.Errorf("%w: --%s and --%s", ErrConflictingFlags, o.Name, neg)
			}
			on, err := fs.GetBool(o.Name)
			if err != nil {
				return config.Record{}, err
			}
			off, err := fs.GetBool(neg)
			if err != nil {
				return config.Record{}, err
			}
			values[o.Name] = config.BoolValue(on && !off)
		case config.KindInt:
			n, err := fs.GetInt(o.Name)
			if err != nil {
				return config.Record{}, err
			}
			values[o.Name] = config.IntValue(n)
		default:
			if !o.Flag.IsSet() && !fs.Changed(o.Name) {
				continue
			}
			s, err := fs.GetString(o.Name)
			if err != nil {
				return config.Record{}, err
			}
			if !o.Allows(s) {
				return config.Record{}, fmt.Errorf("%w: --%s=%q (choose from %s)",
					ErrInvalidChoice, o.Name, s, strings.Join(o.Choices, ", "))
			}
			if o.Kind == config.KindEnum {
				values[o.Name] = config.EnumValue(s)
			} else {
				values[o.Name] = config.StringValue(s)
			}
		}
	}
	return config.NewRecord(values), nil
}
