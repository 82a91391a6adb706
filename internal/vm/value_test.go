package vm

import "testing"

func TestValueInspect(t *testing.T) {
	interner := newInternTable()

	tests := []struct {
		value    Value
		expected string
	}{
		{NilVal(), "nil"},
		{BoolVal(true), "true"},
		{BoolVal(false), "false"},
		{NumberVal(11), "11"},
		{NumberVal(2.5), "2.5"},
		{NumberVal(-3), "-3"},
		{NumberVal(0), "0"},
		{ObjVal(interner.Intern("hello")), "hello"},
		{ObjVal(NewFunction("add")), "<fn add>"},
		{ObjVal(NewFunction("")), "<script>"},
		{ObjVal(&NativeObject{Name: "clock"}), "<native>"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.value.Inspect(); got != tt.expected {
				t.Errorf("wrong display. got=%q, want=%q", got, tt.expected)
			}
		})
	}
}

func TestValueEquality(t *testing.T) {
	interner := newInternTable()
	fnA := NewFunction("a")
	fnB := NewFunction("b")

	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"nil == nil", NilVal(), NilVal(), true},
		{"true == true", BoolVal(true), BoolVal(true), true},
		{"true != false", BoolVal(true), BoolVal(false), false},
		{"1 == 1", NumberVal(1), NumberVal(1), true},
		{"1 != 2", NumberVal(1), NumberVal(2), false},
		{"nil != false", NilVal(), BoolVal(false), false},
		{"0 != false", NumberVal(0), BoolVal(false), false},
		{"interned strings", ObjVal(interner.Intern("s")), ObjVal(interner.Intern("s")), true},
		{"different strings", ObjVal(interner.Intern("s")), ObjVal(interner.Intern("t")), false},
		{"same function", ObjVal(fnA), ObjVal(fnA), true},
		{"different functions", ObjVal(fnA), ObjVal(fnB), false},
		{"number != string", NumberVal(1), ObjVal(interner.Intern("1")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.expected {
				t.Errorf("wrong equality. got=%t, want=%t", got, tt.expected)
			}
		})
	}
}

func TestValueFalsiness(t *testing.T) {
	interner := newInternTable()

	falsey := []Value{NilVal(), BoolVal(false)}
	truthy := []Value{
		BoolVal(true),
		NumberVal(0),
		NumberVal(1),
		ObjVal(interner.Intern("")),
		ObjVal(NewFunction("f")),
	}

	for _, v := range falsey {
		if !v.IsFalsey() {
			t.Errorf("%s should be falsey", v.Inspect())
		}
	}
	for _, v := range truthy {
		if v.IsFalsey() {
			t.Errorf("%s should be truthy", v.Inspect())
		}
	}
}

func TestInternTable(t *testing.T) {
	interner := newInternTable()

	a := interner.Intern("chars")
	b := interner.Intern("chars")
	c := interner.Intern("other")

	if a != b {
		t.Error("equal strings must intern to the same object")
	}
	if a == c {
		t.Error("distinct strings must not share an object")
	}
	if a.Chars != "chars" {
		t.Errorf("wrong content. got=%q", a.Chars)
	}
}
