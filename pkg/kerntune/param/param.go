// Package param defines the kernel parameter key/value types and the
// ordered parameter map produced by the resolution engine.
//
// A parameter value is one of three fixed kinds: a single integer, a bare
// word (for symbolic tunables such as qdisc names), or a whitespace-joined
// integer tuple (for multi-field tunables such as tcp_rmem). The kind is
// fixed per key and round-trips to text losslessly.
package param

import (
	"strconv"
	"strings"
)

// Key identifies a kernel tunable in dotted sysctl notation,
// e.g. "vm.swappiness" or "net.ipv4.tcp_rmem".
type Key string

// Kind discriminates the value representations.
type Kind int

// Value kinds.
const (
	KindInt Kind = iota
	KindString
	KindTuple
)

// Value is an immutable parameter value.
type Value struct {
	kind  Kind
	num   int64
	str   string
	tuple []int64
}

// Int returns an integer value.
func Int(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// Str returns a bare-word string value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Tuple returns a whitespace-joined integer tuple value.
func Tuple(parts ...int64) Value {
	t := make([]int64, len(parts))
	copy(t, parts)
	return Value{kind: KindTuple, tuple: t}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the numeric value for KindInt values and 0 otherwise.
func (v Value) Int64() int64 { return v.num }

// String renders the value in sysctl text form.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindString:
		return v.str
	case KindTuple:
		parts := make([]string, len(v.tuple))
		for i, n := range v.tuple {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and rendering.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.String() == o.String()
}

// Parse interprets sysctl text as a Value. Pure integers parse as KindInt,
// all-integer multi-field text as KindTuple, anything else as KindString.
// Used when reading live values back from /proc/sys for comparison.
func Parse(s string) Value {
	s = strings.TrimSpace(s)
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return Str("")
	case 1:
		if n, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
			return Int(n)
		}
		return Str(s)
	default:
		nums := make([]int64, len(fields))
		for i, f := range fields {
			n, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return Str(s)
			}
			nums[i] = n
		}
		return Tuple(nums...)
	}
}
