package vm

import (
	"math"
	"strconv"
)

// ValueType identifies the variant stored in a Value.
type ValueType uint8

const (
	VAL_NIL ValueType = iota
	VAL_BOOL
	VAL_NUMBER
	VAL_OBJ
)

// Value is a stack-allocated tagged union. Numbers and booleans live in the
// Data word; heap objects (strings, functions, natives) hang off Obj.
type Value struct {
	Type ValueType
	Data uint64 // float64 bits, or bool (0/1)
	Obj  Object
}

// Constructors

func NilVal() Value {
	return Value{Type: VAL_NIL}
}

func BoolVal(v bool) Value {
	var data uint64
	if v {
		data = 1
	}
	return Value{Type: VAL_BOOL, Data: data}
}

func NumberVal(v float64) Value {
	return Value{Type: VAL_NUMBER, Data: math.Float64bits(v)}
}

func ObjVal(o Object) Value {
	return Value{Type: VAL_OBJ, Obj: o}
}

// Accessors

func (v Value) AsBool() bool {
	return v.Data == 1
}

func (v Value) AsNumber() float64 {
	return math.Float64frombits(v.Data)
}

// AsString returns the interned string object. Check IsString first.
func (v Value) AsString() *StringObject {
	return v.Obj.(*StringObject)
}

// Type checks

func (v Value) IsNil() bool    { return v.Type == VAL_NIL }
func (v Value) IsBool() bool   { return v.Type == VAL_BOOL }
func (v Value) IsNumber() bool { return v.Type == VAL_NUMBER }
func (v Value) IsObj() bool    { return v.Type == VAL_OBJ }

func (v Value) IsString() bool {
	if v.Type != VAL_OBJ {
		return false
	}
	_, ok := v.Obj.(*StringObject)
	return ok
}

// IsFalsey reports the boolean projection: only nil and false are falsey.
func (v Value) IsFalsey() bool {
	return v.Type == VAL_NIL || (v.Type == VAL_BOOL && v.Data == 0)
}

// Equals compares two values: same variant and same content. Numbers compare
// by IEEE-754 equality; strings are interned so comparison is identity, as is
// comparison of functions and natives.
func (v Value) Equals(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case VAL_NIL:
		return true
	case VAL_BOOL:
		return v.Data == other.Data
	case VAL_NUMBER:
		return v.AsNumber() == other.AsNumber()
	case VAL_OBJ:
		return v.Obj == other.Obj
	default:
		return false
	}
}

// Inspect returns the display form: the shortest round-trip decimal for
// numbers (no trailing ".0" for integral values), true/false, nil, the raw
// characters for strings, "<fn name>" for functions, "<native>" for natives.
func (v Value) Inspect() string {
	switch v.Type {
	case VAL_NIL:
		return "nil"
	case VAL_BOOL:
		if v.Data == 1 {
			return "true"
		}
		return "false"
	case VAL_NUMBER:
		return strconv.FormatFloat(v.AsNumber(), 'g', -1, 64)
	case VAL_OBJ:
		return v.Obj.Inspect()
	default:
		return "<?>"
	}
}
