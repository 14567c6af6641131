package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationFilesAreEmbedded(t *testing.T) {
	names, err := MigrationFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
	if names[0] != "00001_leads_advisor.sql" {
		t.Errorf("first migration = %q", names[0])
	}
}

func TestMigrationsCarryGooseAnnotations(t *testing.T) {
	names, err := MigrationFiles()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range names {
		body, err := fs.ReadFile(migrationsFS, migrationsDir+"/"+name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		text := string(body)
		if !strings.Contains(text, "-- +goose Up") || !strings.Contains(text, "-- +goose Down") {
			t.Errorf("%s is missing goose Up/Down annotations", name)
		}
	}
}
