package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rewearhq/rewear-backend/pkg/migrate"
)

func TestSchemaMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_exchange_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE users",
		"CHECK (points_balance >= 0)",
		"CREATE TABLE items",
		"CHECK (points > 0)",
		"CREATE TABLE swap_proposals",
		"CREATE TABLE redemptions",
		"CREATE UNIQUE INDEX idx_redemptions_item_id",
		"DROP TABLE IF EXISTS redemptions",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateMigrationsDir(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
