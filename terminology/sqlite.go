package terminology

import (
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/qustavo/dotsql"
	"github.com/rs/zerolog"
)

//go:embed queries/*.sql
var queriesFS embed.FS

// SNOMED CT description typeIds.
const (
	fsnTypeID     = 900000000000003001 // fully specified name
	synonymTypeID = 900000000000013009 // synonym
)

// LoadSQLite builds a Store from the shipped single-file SNOMED-subset
// SQLite database. Loading is all-or-nothing: any failure leaves no usable
// store and should be treated by the host application as a fatal startup
// error, since no meaningful evaluation can occur without terminology.
//
// opts run against the Builder before loading, for settings the database
// does not carry (cache size, lookup recorder).
func LoadSQLite(path string, log zerolog.Logger, opts ...func(*Builder)) (*Store, error) {
	start := time.Now()

	db, err := sqlx.Connect("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open terminology db: %w", err)
	}
	defer db.Close()

	dot, err := loadQueries()
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	for _, opt := range opts {
		opt(b)
	}

	if err := loadConcepts(db, dot, b); err != nil {
		return nil, err
	}
	edges, err := loadEdges(db, dot, b)
	if err != nil {
		return nil, err
	}
	mapped, err := loadFeatureMap(db, dot, b)
	if err != nil {
		return nil, err
	}
	if err := loadMeta(db, dot, b); err != nil {
		return nil, err
	}

	store := b.Build()

	log.Info().
		Str("path", path).
		Int("concepts", store.Count()).
		Int("isa_edges", edges).
		Int("feature_keys", mapped).
		Dur("elapsed", time.Since(start)).
		Msg("terminology store loaded")

	return store, nil
}

func loadQueries() (*dotsql.DotSql, error) {
	data, err := queriesFS.ReadFile("queries/terminology.sql")
	if err != nil {
		return nil, fmt.Errorf("read embedded queries: %w", err)
	}
	dot, err := dotsql.LoadFromString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse embedded queries: %w", err)
	}
	return dot, nil
}

func loadConcepts(db *sqlx.DB, dot *dotsql.DotSql, b *Builder) error {
	conceptQ, err := dot.Raw("list-concepts")
	if err != nil {
		return fmt.Errorf("query not found: list-concepts")
	}

	var ids []int64
	if err := db.Select(&ids, conceptQ); err != nil {
		return fmt.Errorf("load concepts: %w", err)
	}
	active := make(map[int64]bool, len(ids))
	for _, id := range ids {
		active[id] = true
	}

	descQ, err := dot.Raw("list-descriptions")
	if err != nil {
		return fmt.Errorf("query not found: list-descriptions")
	}

	type descRow struct {
		ConceptID int64  `db:"concept_id"`
		TypeID    int64  `db:"type_id"`
		Term      string `db:"term"`
	}
	var descs []descRow
	if err := db.Select(&descs, descQ); err != nil {
		return fmt.Errorf("load descriptions: %w", err)
	}

	// Preferred term is the FSN when present, else the first synonym.
	// Remaining synonym descriptions become search aids.
	terms := make(map[int64]string, len(active))
	synonyms := make(map[int64][]string)
	for _, d := range descs {
		if !active[d.ConceptID] {
			continue
		}
		switch d.TypeID {
		case fsnTypeID:
			if terms[d.ConceptID] == "" {
				terms[d.ConceptID] = d.Term
			}
		case synonymTypeID:
			synonyms[d.ConceptID] = append(synonyms[d.ConceptID], d.Term)
		}
	}

	for id := range active {
		term := terms[id]
		syns := synonyms[id]
		if term == "" && len(syns) > 0 {
			term, syns = syns[0], syns[1:]
		}
		if term == "" {
			return fmt.Errorf("concept %d has no active description", id)
		}
		b.AddConcept(id, term, syns...)
	}
	return nil
}

func loadEdges(db *sqlx.DB, dot *dotsql.DotSql, b *Builder) (int, error) {
	q, err := dot.Raw("list-isa-edges")
	if err != nil {
		return 0, fmt.Errorf("query not found: list-isa-edges")
	}

	type edgeRow struct {
		Child  int64 `db:"child_concept_id"`
		Parent int64 `db:"parent_concept_id"`
	}
	var edges []edgeRow
	if err := db.Select(&edges, q); err != nil {
		return 0, fmt.Errorf("load is-a edges: %w", err)
	}
	for _, e := range edges {
		b.AddEdge(e.Child, e.Parent)
	}
	return len(edges), nil
}

func loadFeatureMap(db *sqlx.DB, dot *dotsql.DotSql, b *Builder) (int, error) {
	q, err := dot.Raw("list-feature-map")
	if err != nil {
		return 0, fmt.Errorf("query not found: list-feature-map")
	}

	type mapRow struct {
		FeatureKey string `db:"feature_key"`
		ConceptID  int64  `db:"concept_id"`
	}
	var rows []mapRow
	if err := db.Select(&rows, q); err != nil {
		return 0, fmt.Errorf("load feature map: %w", err)
	}
	for _, r := range rows {
		b.MapFeatureKey(r.FeatureKey, r.ConceptID)
	}
	return len(rows), nil
}

func loadMeta(db *sqlx.DB, dot *dotsql.DotSql, b *Builder) error {
	q, err := dot.Raw("list-meta")
	if err != nil {
		return fmt.Errorf("query not found: list-meta")
	}

	type metaRow struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}
	var rows []metaRow
	if err := db.Select(&rows, q); err != nil {
		return fmt.Errorf("load meta: %w", err)
	}
	for _, r := range rows {
		b.SetMeta(r.Key, r.Value)
	}
	return nil
}
