package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcweebus/quietcurrent/internal/game"
)

func TestCatalogsListEveryEntry(t *testing.T) {
	docs := map[string]string{}
	for _, f := range catalogs() {
		docs[f.Name] = f.Content
	}
	tests := []struct {
		file  string
		names []string
	}{
		{"buildings.md", []string{"junction box", "tending frame"}},
		{"residents.md", []string{"Weft", "Sable"}},
		{"wanderers.md", []string{"Pale", "Reed"}},
		{"crops.md", []string{"bean"}},
		{"flowers.md", []string{"clover", "moonflower"}},
	}
	for _, tc := range tests {
		content, ok := docs[tc.file]
		if !ok {
			t.Fatalf("missing catalog %s", tc.file)
		}
		for _, name := range tc.names {
			if !strings.Contains(content, "| "+name+" |") {
				t.Fatalf("%s missing row for %q", tc.file, name)
			}
		}
	}
	if rows := strings.Count(docs["wanderers.md"], "\n| ") - 2; rows != len(game.WandererKinds()) {
		t.Fatalf("wanderer rows=%d want %d", rows, len(game.WandererKinds()))
	}
}

func TestDescribeRule(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{game.EfficiencyAtLeast{Percent: 75}, "EfficiencyAtLeast{Percent:75}"},
		{game.Passive{}, "Passive"},
		{nil, ""},
	}
	for _, tc := range tests {
		if got := describeRule(tc.in); got != tc.want {
			t.Fatalf("describeRule(%#v)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestEscape(t *testing.T) {
	if got := escape(" a|b\nc "); got != "a\\|b<br>c" {
		t.Fatalf("escape=%q", got)
	}
}

func TestWriteCatalogs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "catalogs")
	if err := writeCatalogs(root); err != nil {
		t.Fatalf("write: %v", err)
	}
	index, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(string(index), "[Residents](./residents.md)") {
		t.Fatalf("index missing residents:\n%s", index)
	}
}
