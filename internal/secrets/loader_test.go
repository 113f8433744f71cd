package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	dsnFile := filepath.Join(dir, "dsn")
	if err := os.WriteFile(dsnFile, []byte("  postgres://db/cv \n"), 0o600); err != nil {
		t.Fatalf("writing dsn file: %v", err)
	}

	emptyFile := filepath.Join(dir, "empty")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		errPart string
	}{
		{
			name:   "inline value",
			src:    Source{Name: "database dsn", Value: " cv.db "},
			expect: "cv.db",
		},
		{
			name:   "file wins over value",
			src:    Source{Value: "cv.db", File: dsnFile},
			expect: "postgres://db/cv",
		},
		{
			name:    "empty file",
			src:     Source{Name: "database dsn", File: emptyFile},
			errPart: "is empty",
		},
		{
			name:    "missing file",
			src:     Source{Name: "database dsn", File: filepath.Join(dir, "missing")},
			errPart: "reading database dsn",
		},
		{
			name:    "nothing configured",
			src:     Source{},
			errPart: "secret is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.src)
			if tt.errPart != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errPart) {
					t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
