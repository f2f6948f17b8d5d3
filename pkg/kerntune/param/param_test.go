package param

import "testing"

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "int", v: Int(4096), want: "4096"},
		{name: "negative int", v: Int(-1), want: "-1"},
		{name: "large int", v: Int(67108864), want: "67108864"},
		{name: "string", v: Str("fq"), want: "fq"},
		{name: "tuple", v: Tuple(4096, 87380, 16777216), want: "4096 87380 16777216"},
		{name: "single-element tuple", v: Tuple(128), want: "128"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
	}{
		{text: "10", kind: KindInt},
		{text: "bbr", kind: KindString},
		{text: "4096 87380 16777216", kind: KindTuple},
		{text: "250 32000 100 128", kind: KindTuple},
	}

	for _, tt := range tests {
		v := Parse(tt.text)
		if v.Kind() != tt.kind {
			t.Errorf("Parse(%q).Kind() = %v, want %v", tt.text, v.Kind(), tt.kind)
		}
		if v.String() != tt.text {
			t.Errorf("Parse(%q).String() = %q, want round-trip", tt.text, v.String())
		}
	}
}

func TestParseMixedFieldsIsString(t *testing.T) {
	v := Parse("cubic reno bbr")
	if v.Kind() != KindString {
		t.Errorf("Kind() = %v, want KindString", v.Kind())
	}
	if v.String() != "cubic reno bbr" {
		t.Errorf("String() = %q", v.String())
	}
}

func TestValueEqual(t *testing.T) {
	if !Int(10).Equal(Int(10)) {
		t.Error("Int(10) should equal Int(10)")
	}
	if Int(10).Equal(Str("10")) {
		t.Error("Int and Str with same text must not be equal")
	}
	if !Tuple(1, 2).Equal(Tuple(1, 2)) {
		t.Error("identical tuples should be equal")
	}
}

func TestMapApplyOverrides(t *testing.T) {
	base := NewMap()
	base.Set("vm.swappiness", Int(10))
	base.Set("net.core.somaxconn", Int(4096))

	over := NewMap()
	over.Set("vm.swappiness", Int(1))
	over.Set("vm.overcommit_memory", Int(1))

	base.Apply(over)

	if v, _ := base.Get("vm.swappiness"); v.Int64() != 1 {
		t.Errorf("override did not win: got %s", v)
	}
	if v, _ := base.Get("net.core.somaxconn"); v.Int64() != 4096 {
		t.Errorf("untouched key changed: got %s", v)
	}
	if _, ok := base.Get("vm.overcommit_memory"); !ok {
		t.Error("new override key not appended")
	}
	if base.Len() != 3 {
		t.Errorf("Len() = %d, want 3", base.Len())
	}
}

func TestMapApplyNil(t *testing.T) {
	m := NewMap()
	m.Set("kernel.panic", Int(10))
	m.Apply(nil)
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestEntriesSorted(t *testing.T) {
	m := NewMap()
	m.Set("vm.swappiness", Int(10))
	m.Set("fs.file-max", Int(2097152))
	m.Set("net.core.somaxconn", Int(4096))
	m.Set("kernel.panic", Int(10))

	entries := m.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Errorf("entries not strictly ascending: %q >= %q", entries[i-1].Key, entries[i].Key)
		}
	}
	if entries[0].Key != "fs.file-max" {
		t.Errorf("first key = %q, want fs.file-max", entries[0].Key)
	}
}
