package main

import (
	"strings"
	"testing"

	"ormtutor/internal/section"
)

func TestParseSection(t *testing.T) {
	tests := []struct {
		name    string
		want    section.ID
		wantErr bool
	}{
		{"theory", section.Theory, false},
		{"setup", section.Setup, false},
		{"crud", section.CRUD, false},
		{"advanced", section.Advanced, false},
		{"", 0, true},
		{"migrations", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSection(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseSection(%q) = %v, want error", tt.name, got)
				}
				if !strings.Contains(err.Error(), "theory, setup, crud, advanced") {
					t.Errorf("error %q does not list the sections", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSection(%q): %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("parseSection(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSectionsTable(t *testing.T) {
	out := sectionsTable([]sectionSummary{
		{ID: section.Theory, Title: "Theory", Cards: 3, Snippets: 1, Default: true},
		{ID: section.Setup, Title: "Setup", Cards: 2, Snippets: 4},
	})
	for _, want := range []string{"SECTION", "theory *", "setup", "Theory"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"serve", "browse", "sections", "import", "revisions", "export", "version"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}
