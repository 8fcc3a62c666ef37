package config

import (
	"encoding/json"
	"sort"
	"strings"
)

// Record is a resolved configuration. It is immutable: methods that
// change a value return a new Record.
type Record struct {
	values map[string]Value
}

// NewRecord builds a Record from values. Unset values are dropped.
func NewRecord(values map[string]Value) Record {
	m := make(map[string]Value, len(values))
	for k, v := range values {
		if v.IsSet() {
			m[k] = v
		}
	}
	return Record{values: m}
}

// Defaults returns the built-in default record. Every recognized option
// has a value.
func Defaults() Record {
	m := make(map[string]Value, len(options))
	for _, o := range options {
		m[o.Name] = o.Default
	}
	return Record{values: m}
}

func (r Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// String returns a string or enum option; "" when absent.
func (r Record) String(name string) string { return r.values[name].Str() }

// Int returns an int option; 0 when absent.
func (r Record) Int(name string) int { return r.values[name].Int() }

// Bool returns a bool option; false when absent.
func (r Record) Bool(name string) bool { return r.values[name].Bool() }

func (r Record) Len() int { return len(r.values) }

// Keys returns the present keys, recognized options first in table order,
// then any others sorted by name.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for _, o := range options {
		if _, ok := r.values[o.Name]; ok {
			keys = append(keys, o.Name)
		}
	}
	var extra []string
	for k := range r.values {
		if _, known := optionIndex[k]; !known {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// With returns a copy of r with name set to v.
func (r Record) With(name string, v Value) Record {
	m := make(map[string]Value, len(r.values)+1)
	for k, val := range r.values {
		m[k] = val
	}
	if v.IsSet() {
		m[name] = v
	}
	return Record{values: m}
}

// Overlay returns a copy of r with every value of over applied on top.
func (r Record) Overlay(over Record) Record {
	out := r
	for k, v := range over.values {
		out = out.With(k, v)
	}
	return out
}

func (r Record) Equal(other Record) bool {
	if len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Map returns the record as plain Go values.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v.Interface()
	}
	return m
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// ValidatorPath returns the configured epubcheck executable, or "" when
// validation is disabled.
func (r Record) ValidatorPath() string {
	return toolPath(r.String("epubcheck"))
}

// ConverterPath returns the configured ebook conversion executable, or ""
// when conversion is disabled.
func (r Record) ConverterPath() string {
	return toolPath(r.String("ebookconvert"))
}

func toolPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.EqualFold(p, "none") {
		return ""
	}
	return p
}

// WordsPerPage returns the effective per-page word target. When pages is
// positive it overrides pgwords and the target becomes wordcount/pages.
func WordsPerPage(r Record, wordcount int) int {
	if pages := r.Int("pages"); pages > 0 {
		return wordcount / pages
	}
	return r.Int("pgwords")
}
