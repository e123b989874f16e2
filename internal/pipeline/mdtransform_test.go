package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []byte
		want    string
		wantErr error
	}{
		{
			name:  "plain UTF-8",
			input: []byte("# Héllo"),
			want:  "# Héllo",
		},
		{
			name:  "BOM stripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, "# Title"...),
			want:  "# Title",
		},
		{
			name:  "empty input",
			input: nil,
			want:  "",
		},
		{
			name:    "invalid byte",
			input:   []byte{'o', 'k', 0xff, 'x'},
			wantErr: ErrInvalidEncoding,
		},
		{
			name:    "truncated multibyte sequence",
			input:   []byte{0xE2, 0x82},
			wantErr: ErrInvalidEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"LF unchanged", "line1\nline2", "line1\nline2"},
		{"CRLF to LF", "line1\r\nline2", "line1\nline2"},
		{"CR to LF", "line1\rline2", "line1\nline2"},
		{"mixed line endings", "a\r\nb\rc\nd", "a\nb\nc\nd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := normalizeLineEndings(tt.input); got != tt.expected {
				t.Errorf("normalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommonMarkPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	p := &CommonMarkPreprocessor{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normalizes line endings", "a\r\nb\rc", "a\nb\nc"},
		{"keeps blank lines", "```\nline1\r\n\r\n\r\n\r\nline2\n```", "```\nline1\n\n\n\nline2\n```"},
		{"keeps highlight syntax for the converter", "`a == b` ==c==", "`a == b` ==c=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := p.PreprocessMarkdown(context.Background(), tt.input); got != tt.expected {
				t.Errorf("PreprocessMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}

	t.Run("cancelled context returns input", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if got := p.PreprocessMarkdown(ctx, "a\r\nb"); got != "a\r\nb" {
			t.Errorf("PreprocessMarkdown() = %q, want input unchanged", got)
		}
	})
}
