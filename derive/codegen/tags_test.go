package codegen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in      string
		want    map[string]string
		wantErr bool
	}{
		{in: "", want: map[string]string{}},
		{in: "omit", want: map[string]string{"omit": ""}},
		{in: "field=user_name,positional", want: map[string]string{"field": "user_name", "positional": ""}},
		{in: "Circle Square fields=snake", want: map[string]string{"Circle": "", "Square": "", "fields": "snake"}},
		{in: `field="a b"`, want: map[string]string{"field": "a b"}},
		{in: "=x", wantErr: true},
		{in: "a,a", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTag(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTag(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTag(%q): %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseTag(%q) (-want +got):\n%s", tt.in, diff)
		}
	}
}
