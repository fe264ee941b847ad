package terminology

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

const testSchema = `
CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);
CREATE TABLE concept (
	concept_id INTEGER PRIMARY KEY,
	active INTEGER,
	effective_time TEXT,
	module_id INTEGER,
	definition_status_id INTEGER
);
CREATE TABLE description (
	description_id INTEGER PRIMARY KEY,
	concept_id INTEGER,
	active INTEGER,
	effective_time TEXT,
	module_id INTEGER,
	language_code TEXT,
	type_id INTEGER,
	term TEXT,
	case_significance_id INTEGER
);
CREATE TABLE isa_edge (
	child_concept_id INTEGER NOT NULL,
	parent_concept_id INTEGER NOT NULL,
	PRIMARY KEY (child_concept_id, parent_concept_id)
);
CREATE TABLE feature_snomed_map (
	feature_key TEXT PRIMARY KEY,
	concept_id INTEGER NOT NULL,
	active INTEGER,
	note TEXT
);
`

// writeTestDB builds a minimal subset DB: 500 is-a 400 is-a 300.
func writeTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snomed.sqlite")
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	defer db.Close()

	db.MustExec(testSchema)

	db.MustExec(`INSERT INTO concept (concept_id, active) VALUES (300, 1), (400, 1), (500, 1), (600, 0)`)

	// FSN + synonym descriptions; concept 500 has only a synonym, 600 is inactive.
	db.MustExec(`INSERT INTO description (description_id, concept_id, active, type_id, term) VALUES
		(1, 300, 1, 900000000000003001, 'Disorder of respiratory system (disorder)'),
		(2, 300, 1, 900000000000013009, 'Respiratory disorder'),
		(3, 400, 1, 900000000000003001, 'Pneumonia (disorder)'),
		(4, 400, 1, 900000000000013009, 'Pneumonia'),
		(5, 400, 0, 900000000000013009, 'Retired synonym'),
		(6, 500, 1, 900000000000013009, 'Bacterial pneumonia'),
		(7, 600, 1, 900000000000003001, 'Inactive concept (disorder)')`)

	db.MustExec(`INSERT INTO isa_edge (child_concept_id, parent_concept_id) VALUES (500, 400), (400, 300)`)

	db.MustExec(`INSERT INTO feature_snomed_map (feature_key, concept_id, active, note) VALUES
		('sick.pe.lungs.crackles_r', 400, 1, NULL),
		('sick.pe.retired', 300, 0, 'retired mapping')`)

	db.MustExec(`INSERT INTO meta (key, value) VALUES ('release', '20260201'), ('edition', 'INT')`)

	return path
}

func TestLoadSQLite(t *testing.T) {
	path := writeTestDB(t)

	store, err := LoadSQLite(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadSQLite() error = %v", err)
	}

	t.Run("active concepts loaded, inactive skipped", func(t *testing.T) {
		if store.Count() != 3 {
			t.Errorf("Count() = %d; want 3", store.Count())
		}
		if _, ok := store.Concept(600); ok {
			t.Error("inactive concept 600 should not be loaded")
		}
	})

	t.Run("FSN preferred, synonym fallback", func(t *testing.T) {
		c, _ := store.Concept(400)
		if c.Term != "Pneumonia (disorder)" {
			t.Errorf("Concept(400).Term = %q; want FSN", c.Term)
		}
		if len(c.Synonyms) != 1 || c.Synonyms[0] != "Pneumonia" {
			t.Errorf("Concept(400).Synonyms = %v; want [Pneumonia]", c.Synonyms)
		}

		c, _ = store.Concept(500)
		if c.Term != "Bacterial pneumonia" {
			t.Errorf("Concept(500).Term = %q; want synonym fallback", c.Term)
		}
	})

	t.Run("ancestry from isa edges", func(t *testing.T) {
		if !store.IsDescendantOf(500, 300) {
			t.Error("IsDescendantOf(500, 300) = false; want true")
		}
		if store.IsDescendantOf(500, 500) {
			t.Error("IsDescendantOf(500, 500) = true; want false")
		}
	})

	t.Run("feature map excludes inactive rows", func(t *testing.T) {
		if id, ok := store.ConceptForFeatureKey("sick.pe.lungs.crackles_r"); !ok || id != 400 {
			t.Errorf("ConceptForFeatureKey = %d, %v; want 400, true", id, ok)
		}
		if _, ok := store.ConceptForFeatureKey("sick.pe.retired"); ok {
			t.Error("retired mapping should not be loaded")
		}
	})

	t.Run("meta carried through", func(t *testing.T) {
		if store.Meta()["release"] != "20260201" {
			t.Errorf("Meta()[release] = %q; want 20260201", store.Meta()["release"])
		}
	})
}

func TestLoadSQLiteFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSQLite(filepath.Join(t.TempDir(), "nope.sqlite"), zerolog.Nop()); err == nil {
			t.Error("expected error for missing database file")
		}
	})

	t.Run("missing tables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.sqlite")
		db, err := sqlx.Connect("sqlite3", path)
		if err != nil {
			t.Fatalf("open test db: %v", err)
		}
		db.MustExec(`CREATE TABLE unrelated (x INTEGER)`)
		db.Close()

		if _, err := LoadSQLite(path, zerolog.Nop()); err == nil {
			t.Error("expected error for database without subset schema")
		}
	})
}
