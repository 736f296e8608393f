package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/migrate"
)

func TestInitMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE orders",
		"CREATE TABLE order_lines",
		"REFERENCES orders (id) ON DELETE CASCADE",
		"CHECK (quantity > 0)",
		"unit_price numeric(12,2) NOT NULL",
		"CREATE TABLE audit_log_entries",
		"DROP TABLE IF EXISTS audit_log_entries",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

// The audit trail must not foreign-key its actor or target: entries
// outlive the rows they point at.
func TestAuditTableHasNoForeignKeys(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil || len(matches) == 0 {
		t.Fatalf("no init schema migration file found: %v", err)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}

	start := strings.Index(string(data), "CREATE TABLE audit_log_entries")
	if start < 0 {
		t.Fatalf("audit_log_entries table not found")
	}
	section := string(data)[start:]
	if end := strings.Index(section, ");"); end > 0 {
		section = section[:end]
	}

	if strings.Contains(section, "REFERENCES") {
		t.Errorf("audit_log_entries must not reference other tables")
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
