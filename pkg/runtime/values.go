// Package runtime defines the ArcScript value union and the chained
// environments scripts execute against.
package runtime

import (
	"fmt"

	"arcscript/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindString
	KindNil
	KindTable
	KindFunction
	KindBuiltin
	KindObject
)

// String returns the tag the type built-in reports for the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNil:
		return "nil"
	case KindTable:
		return "table"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

//-----------------------------------------------------------------------------
// Tables
//-----------------------------------------------------------------------------

// TableEntry is one key/value slot. Key is a StringValue or an IntegerValue.
type TableEntry struct {
	Key   Value
	Value Value
}

// TableValue is an insertion-ordered mapping with string or integer keys.
// Tables are reference values: bindings share the same storage, so mutation
// through one binding is visible through all of them.
type TableValue struct {
	entries []TableEntry
	index   map[tableKey]int
}

// tableKey folds a key value into a comparable form. String and integer keys
// never collide: "1" and 1 are distinct slots.
type tableKey struct {
	str   string
	num   int64
	isInt bool
}

func normalizeKey(key Value) (tableKey, bool) {
	switch k := key.(type) {
	case StringValue:
		return tableKey{str: k.Val}, true
	case IntegerValue:
		return tableKey{num: k.Val, isInt: true}, true
	default:
		return tableKey{}, false
	}
}

// ValidTableKey reports whether the value can key a table.
func ValidTableKey(key Value) bool {
	_, ok := normalizeKey(key)
	return ok
}

// NewTable returns an empty table.
func NewTable() *TableValue {
	return &TableValue{index: make(map[tableKey]int)}
}

func (t *TableValue) Kind() Kind { return KindTable }

// Len returns the entry count.
func (t *TableValue) Len() int { return len(t.entries) }

// Entries exposes the slots in insertion order.
func (t *TableValue) Entries() []TableEntry { return t.entries }

// Set writes key to value. An existing key keeps its original position.
// Returns false for a key that is not a string or integer.
func (t *TableValue) Set(key, value Value) bool {
	nk, ok := normalizeKey(key)
	if !ok {
		return false
	}
	if i, exists := t.index[nk]; exists {
		t.entries[i].Value = value
		return true
	}
	t.index[nk] = len(t.entries)
	t.entries = append(t.entries, TableEntry{Key: key, Value: value})
	return true
}

// Get returns the value stored under key, reporting whether it was present.
func (t *TableValue) Get(key Value) (Value, bool) {
	nk, ok := normalizeKey(key)
	if !ok {
		return nil, false
	}
	i, exists := t.index[nk]
	if !exists {
		return nil, false
	}
	return t.entries[i].Value, true
}

//-----------------------------------------------------------------------------
// Functions & objects
//-----------------------------------------------------------------------------

// FunctionValue is a user-defined function bound to the environment active
// at its definition.
type FunctionValue struct {
	Name    string // empty for anonymous literals
	Params  []string
	Body    *ast.BlockStatement
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeFunc implements a built-in function.
type NativeFunc func(args []Value) (Value, error)

// NativeFunctionValue is a built-in. Arity below zero means variadic;
// otherwise the evaluator enforces the exact argument count before calling
// Impl.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindBuiltin }

// ObjectValue is a named instance with a fixed member namespace. Fields,
// methods and handlers all live in Members, an Environment whose parent is
// the scope the object was declared in; methods close over that same
// Environment, which is what lets them resolve sibling members.
type ObjectValue struct {
	Name    string
	Members *Environment
}

func (v *ObjectValue) Kind() Kind { return KindObject }
