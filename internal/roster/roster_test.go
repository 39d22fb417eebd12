package roster

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"mixed separators", "Alice\nBob, Charlie\n\n", []string{"Alice", "Bob", "Charlie"}},
		{"crlf", "Court 1\r\nCourt 2\r\n", []string{"Court 1", "Court 2"}},
		{"extra whitespace", "  Alice  ,\t Bob \n", []string{"Alice", "Bob"}},
		{"duplicates kept", "Alice\nAlice", []string{"Alice", "Alice"}},
		{"only separators", ", ,\n\n,", nil},
		{"empty", "", nil},
		{"inner spaces kept", "Mary Ann, Jo Jo", []string{"Mary Ann", "Jo Jo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	got := Clean([]string{" Alice ", "", "   ", "Bob"})
	want := []string{"Alice", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}
