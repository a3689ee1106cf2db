// Package postgres implements store.Store on PostgreSQL with the pgvector
// extension. Similarity ranking runs in the database via the <=> operator.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

// Migrate installs the vector extension and creates the tables if missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "apply postgres schema")
	}
	return nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Documents() store.Documents { return &documents{db: s.db} }
func (s *pgStore) Versions() store.Versions   { return &versions{db: s.db} }
func (s *pgStore) Samples() store.Samples     { return &samples{db: s.db} }
func (s *pgStore) Close() error               { return s.db.Close() }

// HealthPing implements health.HealthPinger for Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap checks that Postgres is reachable before the store is used.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil // No DSN configured, skip bootstrap
	}

	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.PingContext(ctx)
}

// --- Documents ---
type documents struct{ db *sql.DB }

const docColumns = `id, owner_id, content, document_type, metadata, embedding, created_at, updated_at`

func (d *documents) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	meta, err := encodeMetadata(doc.Metadata)
	if err != nil {
		return nil, err
	}
	created := doc.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	updated := doc.UpdatedAt
	if updated.IsZero() {
		updated = created
	}
	row := d.db.QueryRowContext(ctx, `
        INSERT INTO documents (`+docColumns+`)
        VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,$8)
        RETURNING `+docColumns,
		doc.ID, doc.OwnerID, doc.Content, string(doc.DocumentType), meta,
		pgvector.NewVector(doc.Embedding), created, updated)
	return scanDocument(row)
}

func (d *documents) Get(ctx context.Context, id string) (*model.Document, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents WHERE id=$1`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return doc, err
}

func (d *documents) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	meta, err := encodeMetadata(doc.Metadata)
	if err != nil {
		return nil, err
	}
	updated := doc.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	row := d.db.QueryRowContext(ctx, `
        UPDATE documents SET content=$2, metadata=$3::jsonb, embedding=$4, updated_at=$5
        WHERE id=$1
        RETURNING `+docColumns,
		doc.ID, doc.Content, meta, pgvector.NewVector(doc.Embedding), updated)
	out, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return out, err
}

func (d *documents) Delete(ctx context.Context, id string) (bool, error) {
	n, err := execCount(ctx, d.db, `DELETE FROM documents WHERE id=$1`, id)
	return n > 0, err
}

func (d *documents) ListByOwner(ctx context.Context, ownerID string, docType model.DocumentType, limit int) ([]*model.Document, error) {
	w := &where{}
	w.add("owner_id = $%d", ownerID)
	if docType != "" {
		w.add("document_type = $%d", string(docType))
	}
	q := `SELECT ` + docColumns + ` FROM documents` + w.String() + ` ORDER BY created_at DESC, id ASC`
	if limit > 0 {
		q += w.placeholder(" LIMIT $%d", limit)
	}
	rows, err := d.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, errors.Wrap(err, "list documents")
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, errors.WithStack(rows.Err())
}

func (d *documents) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	return execCount(ctx, d.db, `DELETE FROM documents WHERE owner_id=$1`, ownerID)
}

// Nearest scores with 1 - cosine distance clamped to [0,1], filters by
// threshold and orders by similarity, then recency, then id.
func (d *documents) Nearest(ctx context.Context, q model.VectorQuery) ([]model.SearchResult, error) {
	w := &where{args: []interface{}{pgvector.NewVector(q.Vector)}}
	const score = `GREATEST(0, LEAST(1, 1 - (embedding <=> $1)))`
	if q.OwnerID != "" {
		w.add("owner_id = $%d", q.OwnerID)
	}
	if q.DocumentType != "" {
		w.add("document_type = $%d", string(q.DocumentType))
	}
	if q.ExcludeID != "" {
		w.add("id <> $%d", q.ExcludeID)
	}
	w.add(score+" >= $%d", q.Threshold)

	sqlText := `SELECT ` + docColumns + `, ` + score + ` AS similarity FROM documents` + w.String() +
		` ORDER BY similarity DESC, created_at DESC, id ASC`
	if q.Limit > 0 {
		sqlText += w.placeholder(" LIMIT $%d", q.Limit)
	}

	rows, err := d.db.QueryContext(ctx, sqlText, w.args...)
	if err != nil {
		return nil, errors.Wrap(err, "nearest documents")
	}
	defer func() { _ = rows.Close() }()
	results := []model.SearchResult{}
	for rows.Next() {
		var sim float64
		doc, err := scanDocumentWith(rows, &sim)
		if err != nil {
			return nil, err
		}
		results = append(results, model.SearchResult{Document: doc, Similarity: sim})
	}
	return results, errors.WithStack(rows.Err())
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(r scanner) (*model.Document, error) { return scanDocumentWith(r) }

func scanDocumentWith(r scanner, extra ...interface{}) (*model.Document, error) {
	var (
		doc     model.Document
		docType string
		meta    []byte
		vec     pgvector.Vector
	)
	dest := append([]interface{}{&doc.ID, &doc.OwnerID, &doc.Content, &docType, &meta, &vec, &doc.CreatedAt, &doc.UpdatedAt}, extra...)
	if err := r.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan document")
	}
	doc.DocumentType = model.DocumentType(docType)
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
			return nil, errors.Wrap(err, "decode metadata")
		}
	}
	doc.Embedding = vec.Slice()
	doc.CreatedAt = doc.CreatedAt.UTC()
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return &doc, nil
}

// --- Versions ---
type versions struct{ db *sql.DB }

const versionColumns = `id, owner_id, category, version, content, payload, created_at`

// Append computes the next version inside the INSERT itself. Two concurrent
// writers that read the same MAX collide on UNIQUE(owner_id, category, version)
// and the loser gets store.ErrVersionConflict.
func (v *versions) Append(ctx context.Context, rec *model.VersionRecord) (*model.VersionRecord, error) {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	payload := rec.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	row := v.db.QueryRowContext(ctx, `
        INSERT INTO version_records (`+versionColumns+`)
        SELECT $1::text, $2::text, $3::text, COALESCE(MAX(version), 0) + 1, $4::text, $5::jsonb, $6::timestamptz
        FROM version_records WHERE owner_id = $2::text AND category = $3::text
        RETURNING `+versionColumns,
		rec.ID, rec.OwnerID, string(rec.Category), rec.Content, string(payload), created)
	out, err := scanVersion(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, store.ErrVersionConflict
		}
		return nil, errors.Wrap(err, "append version")
	}
	return out, nil
}

func (v *versions) Latest(ctx context.Context, ownerID string, category model.Category) (*model.VersionRecord, error) {
	row := v.db.QueryRowContext(ctx, `
        SELECT `+versionColumns+` FROM version_records
        WHERE owner_id=$1 AND category=$2 ORDER BY version DESC LIMIT 1`, ownerID, string(category))
	rec, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return rec, err
}

func (v *versions) List(ctx context.Context, ownerID string, category model.Category) ([]*model.VersionRecord, error) {
	rows, err := v.db.QueryContext(ctx, `
        SELECT `+versionColumns+` FROM version_records
        WHERE owner_id=$1 AND category=$2 ORDER BY version ASC`, ownerID, string(category))
	if err != nil {
		return nil, errors.Wrap(err, "list versions")
	}
	defer func() { _ = rows.Close() }()
	out := []*model.VersionRecord{}
	for rows.Next() {
		rec, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, errors.WithStack(rows.Err())
}

func (v *versions) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	return execCount(ctx, v.db, `DELETE FROM version_records WHERE owner_id=$1`, ownerID)
}

func scanVersion(r scanner) (*model.VersionRecord, error) {
	var rec model.VersionRecord
	var category string
	if err := r.Scan(&rec.ID, &rec.OwnerID, &category, &rec.Version, &rec.Content, &rec.Payload, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.Category = model.Category(category)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

// --- Samples ---
type samples struct{ db *sql.DB }

func (s *samples) Add(ctx context.Context, in *model.StyleSample) (*model.StyleSample, error) {
	out := *in
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO style_samples (id, owner_id, content, platform, content_type, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`,
		out.ID, out.OwnerID, out.Content, out.Platform, out.ContentType, out.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "insert sample")
	}
	return &out, nil
}

func (s *samples) List(ctx context.Context, ownerID string) ([]*model.StyleSample, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, owner_id, content, platform, content_type, created_at
        FROM style_samples WHERE owner_id=$1 ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list samples")
	}
	defer func() { _ = rows.Close() }()
	out := []*model.StyleSample{}
	for rows.Next() {
		var smp model.StyleSample
		if err := rows.Scan(&smp.ID, &smp.OwnerID, &smp.Content, &smp.Platform, &smp.ContentType, &smp.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan sample")
		}
		smp.CreatedAt = smp.CreatedAt.UTC()
		out = append(out, &smp)
	}
	return out, errors.WithStack(rows.Err())
}

func (s *samples) Delete(ctx context.Context, id string) (bool, error) {
	n, err := execCount(ctx, s.db, `DELETE FROM style_samples WHERE id=$1`, id)
	return n > 0, err
}

func (s *samples) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	return execCount(ctx, s.db, `DELETE FROM style_samples WHERE owner_id=$1`, ownerID)
}

// --- helpers ---

// where accumulates AND-ed predicates with numbered placeholders.
type where struct {
	preds []string
	args  []interface{}
}

func (w *where) placeholder(format string, arg interface{}) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf(format, len(w.args))
}

func (w *where) add(format string, arg interface{}) {
	w.preds = append(w.preds, w.placeholder(format, arg))
}

func (w *where) String() string {
	if len(w.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.preds, " AND ")
}

func execCount(ctx context.Context, db *sql.DB, q string, args ...interface{}) (int, error) {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	return int(n), errors.WithStack(err)
}

func encodeMetadata(m map[string]interface{}) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", errors.Wrap(err, "encode metadata")
	}
	return string(b), nil
}
