package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a configuration file. The file is trusted wholesale: the
// returned Record holds exactly the recognized keys the file contains.
// Unknown keys are ignored and missing keys are not filled in.
//
// Files ending in .yaml or .yml are decoded as YAML; everything else as
// JSON.
func LoadFile(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Record{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Record{}, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return Record{}, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
		}
	}
	if raw == nil {
		return Record{}, fmt.Errorf("%w: %s: expected an object", ErrMalformedConfig, path)
	}
	return decodeRaw(raw)
}

func decodeRaw(raw map[string]any) (Record, error) {
	values := make(map[string]Value, len(raw))
	for name, in := range raw {
		opt, ok := Lookup(name)
		if !ok {
			continue
		}
		v, err := convert(opt, in)
		if err != nil {
			return Record{}, fmt.Errorf("%w: key %q: %v", ErrMalformedConfig, name, err)
		}
		values[name] = v
	}
	return NewRecord(values), nil
}

func convert(opt Option, in any) (Value, error) {
	switch opt.Kind {
	case KindBool:
		b, ok := in.(bool)
		if !ok {
			return Value{}, fmt.Errorf("want bool, got %T", in)
		}
		return BoolValue(b), nil
	case KindInt:
		n, err := toInt(in)
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case KindEnum:
		s, ok := in.(string)
		if !ok {
			return Value{}, fmt.Errorf("want string, got %T", in)
		}
		return EnumValue(s), nil
	default:
		s, ok := in.(string)
		if !ok {
			return Value{}, fmt.Errorf("want string, got %T", in)
		}
		return StringValue(s), nil
	}
}

func toInt(in any) (int, error) {
	switch n := in.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d out of range", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("want integer, got %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("want integer, got %s", n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("want integer, got %T", in)
	}
}
