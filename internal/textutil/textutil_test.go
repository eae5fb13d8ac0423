package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple words",
			input: "Hello World",
			want:  []string{"Hello", "World"},
		},
		{
			name:  "keeps short tokens",
			input: "a to the quick fox",
			want:  []string{"a", "to", "the", "quick", "fox"},
		},
		{
			name:  "handles punctuation",
			input: "Hello, World! How are you?",
			want:  []string{"Hello", "World", "How", "are", "you"},
		},
		{
			name:  "handles numbers",
			input: "test123 456test",
			want:  []string{"test123", "456test"},
		},
		{
			name:  "keeps non-ascii letters",
			input: "Björk's café",
			want:  []string{"Björk", "s", "café"},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "only punctuation",
			input: "-- ... !!",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"thisisatest123", true},
		{"This", false},
		{"two words", false},
		{"café", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsCanonical(tt.input), "IsCanonical(%q)", tt.input)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  notes.txt ", "notes.txt"},
		{"a/b\\c:d*e", "a-b-c-d-e"},
		{"what?<>|\"", "what"},
		{"   ", ""},
		{"my   report\t.txt", "my report .txt"},
		{"../etc", "-etc"},
		{". hidden", "hidden"},
		{"bell\a.txt", "bell.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.input), "SanitizeFileName(%q)", tt.input)
	}
}
