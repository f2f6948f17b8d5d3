package profile

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Profile
		wantErr bool
	}{
		{in: "general", want: General},
		{in: "Database", want: Database},
		{in: " cache ", want: Cache},
		{in: "COMPUTE", want: Compute},
		{in: "gaming", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownProfile) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownProfile", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAllCoversFixedSet(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("All() returned %d profiles, want 10", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1] >= all[i] {
			t.Errorf("All() not sorted: %q >= %q", all[i-1], all[i])
		}
	}
	for _, p := range all {
		if !p.Valid() {
			t.Errorf("profile %q not valid", p)
		}
		if p.Description() == "" {
			t.Errorf("profile %q has no description", p)
		}
	}
}
