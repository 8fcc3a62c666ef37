package config

import (
	"fmt"
	"strconv"
)

// Kind is the type of an option value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a typed option value. The zero Value is "unset".
type Value struct {
	kind Kind
	set  bool
	str  string
	num  int
	flag bool
}

func StringValue(s string) Value { return Value{kind: KindString, set: true, str: s} }
func EnumValue(s string) Value   { return Value{kind: KindEnum, set: true, str: s} }
func IntValue(n int) Value       { return Value{kind: KindInt, set: true, num: n} }
func BoolValue(b bool) Value     { return Value{kind: KindBool, set: true, flag: b} }

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsSet() bool { return v.set }

// Str returns the value of a string or enum option.
func (v Value) Str() string { return v.str }

func (v Value) Int() int   { return v.num }
func (v Value) Bool() bool { return v.flag }

// Interface returns the value as a plain Go value for encoding.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	default:
		return v.str
	}
}

func (v Value) String() string {
	if !v.set {
		return "<unset>"
	}
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.num)
	case KindBool:
		return strconv.FormatBool(v.flag)
	default:
		return v.str
	}
}

// GoString keeps testify diffs readable.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.kind, v)
}
