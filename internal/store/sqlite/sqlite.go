// Package sqlite implements store.Store on modernc.org/sqlite for the local
// build target. Similarity is computed in Go over the filtered candidates.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/similarity"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
)

// New opens the database at path, applies the schema and returns the store.
func New(ctx context.Context, path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an already migrated connection.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Documents() store.Documents { return &documents{db: s.db} }
func (s *sqliteStore) Versions() store.Versions   { return &versions{db: s.db} }
func (s *sqliteStore) Samples() store.Samples     { return &samples{db: s.db} }
func (s *sqliteStore) Close() error               { return s.db.Close() }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- Documents ---
type documents struct{ db *sql.DB }

const docColumns = `id, owner_id, content, document_type, metadata, embedding, created_at, updated_at`

func (d *documents) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	out := *doc
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = out.CreatedAt
	}
	meta, err := encodeMetadata(out.Metadata)
	if err != nil {
		return nil, err
	}
	_, err = d.db.ExecContext(ctx, `INSERT INTO documents (`+docColumns+`) VALUES (?,?,?,?,?,?,?,?)`,
		out.ID, out.OwnerID, out.Content, string(out.DocumentType), meta, encodeVector(out.Embedding),
		out.CreatedAt.UnixNano(), out.UpdatedAt.UnixNano())
	if err != nil {
		return nil, errors.Wrap(err, "insert document")
	}
	return &out, nil
}

func (d *documents) Get(ctx context.Context, id string) (*model.Document, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+docColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return doc, err
}

func (d *documents) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	updated := doc.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	meta, err := encodeMetadata(doc.Metadata)
	if err != nil {
		return nil, err
	}
	res, err := d.db.ExecContext(ctx, `
        UPDATE documents SET content = ?, metadata = ?, embedding = ?, updated_at = ?
        WHERE id = ?`,
		doc.Content, meta, encodeVector(doc.Embedding), updated.UnixNano(), doc.ID)
	if err != nil {
		return nil, errors.Wrap(err, "update document")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, store.ErrNotFound
	}
	return d.Get(ctx, doc.ID)
}

func (d *documents) Delete(ctx context.Context, id string) (bool, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return false, errors.Wrap(err, "delete document")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.WithStack(err)
	}
	return n > 0, nil
}

func (d *documents) ListByOwner(ctx context.Context, ownerID string, docType model.DocumentType, limit int) ([]*model.Document, error) {
	q := `SELECT ` + docColumns + ` FROM documents WHERE owner_id = ?`
	args := []interface{}{ownerID}
	if docType != "" {
		q += ` AND document_type = ?`
		args = append(args, string(docType))
	}
	q += ` ORDER BY created_at DESC, id ASC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return d.query(ctx, q, args...)
}

func (d *documents) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	return execCount(ctx, d.db, `DELETE FROM documents WHERE owner_id = ?`, ownerID)
}

func (d *documents) Nearest(ctx context.Context, q model.VectorQuery) ([]model.SearchResult, error) {
	var where []string
	var args []interface{}
	if q.OwnerID != "" {
		where = append(where, `owner_id = ?`)
		args = append(args, q.OwnerID)
	}
	if q.DocumentType != "" {
		where = append(where, `document_type = ?`)
		args = append(args, string(q.DocumentType))
	}
	if q.ExcludeID != "" {
		where = append(where, `id <> ?`)
		args = append(args, q.ExcludeID)
	}
	sqlText := `SELECT ` + docColumns + ` FROM documents`
	if len(where) > 0 {
		sqlText += ` WHERE ` + strings.Join(where, ` AND `)
	}
	candidates, err := d.query(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	return similarity.Rank(candidates, q), nil
}

func (d *documents) query(ctx context.Context, q string, args ...interface{}) ([]*model.Document, error) {
	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query documents")
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

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(r scanner) (*model.Document, error) {
	var (
		doc              model.Document
		docType, meta    string
		vec              []byte
		created, updated int64
	)
	if err := r.Scan(&doc.ID, &doc.OwnerID, &doc.Content, &docType, &meta, &vec, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan document")
	}
	doc.DocumentType = model.DocumentType(docType)
	if err := json.Unmarshal([]byte(meta), &doc.Metadata); err != nil {
		return nil, errors.Wrap(err, "decode metadata")
	}
	doc.Embedding = decodeVector(vec)
	doc.CreatedAt = time.Unix(0, created).UTC()
	doc.UpdatedAt = time.Unix(0, updated).UTC()
	return &doc, nil
}

// --- Versions ---
type versions struct{ db *sql.DB }

func (v *versions) Append(ctx context.Context, rec *model.VersionRecord) (*model.VersionRecord, error) {
	out := *rec
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	row := v.db.QueryRowContext(ctx, `
        INSERT INTO version_records (id, owner_id, category, version, content, payload, created_at)
        SELECT ?, ?, ?, COALESCE(MAX(version), 0) + 1, ?, ?, ?
        FROM version_records WHERE owner_id = ? AND category = ?
        RETURNING version`,
		out.ID, out.OwnerID, string(out.Category), out.Content, string(out.Payload), out.CreatedAt.UnixNano(),
		out.OwnerID, string(out.Category))
	if err := row.Scan(&out.Version); err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrVersionConflict
		}
		return nil, errors.Wrap(err, "append version")
	}
	return &out, nil
}

const versionColumns = `id, owner_id, category, version, content, payload, created_at`

func (v *versions) Latest(ctx context.Context, ownerID string, category model.Category) (*model.VersionRecord, error) {
	row := v.db.QueryRowContext(ctx, `
        SELECT `+versionColumns+` FROM version_records
        WHERE owner_id = ? AND category = ? ORDER BY version DESC LIMIT 1`, ownerID, string(category))
	rec, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return rec, err
}

func (v *versions) List(ctx context.Context, ownerID string, category model.Category) ([]*model.VersionRecord, error) {
	rows, err := v.db.QueryContext(ctx, `
        SELECT `+versionColumns+` FROM version_records
        WHERE owner_id = ? AND category = ? ORDER BY version ASC`, ownerID, string(category))
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
	return execCount(ctx, v.db, `DELETE FROM version_records WHERE owner_id = ?`, ownerID)
}

func scanVersion(r scanner) (*model.VersionRecord, error) {
	var (
		rec      model.VersionRecord
		category string
		payload  string
		created  int64
	)
	if err := r.Scan(&rec.ID, &rec.OwnerID, &category, &rec.Version, &rec.Content, &payload, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan version")
	}
	rec.Category = model.Category(category)
	rec.Payload = []byte(payload)
	rec.CreatedAt = time.Unix(0, created).UTC()
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
        VALUES (?,?,?,?,?,?)`,
		out.ID, out.OwnerID, out.Content, out.Platform, out.ContentType, out.CreatedAt.UnixNano())
	if err != nil {
		return nil, errors.Wrap(err, "insert sample")
	}
	return &out, nil
}

func (s *samples) List(ctx context.Context, ownerID string) ([]*model.StyleSample, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, owner_id, content, platform, content_type, created_at
        FROM style_samples WHERE owner_id = ? ORDER BY created_at ASC, rowid ASC`, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "list samples")
	}
	defer func() { _ = rows.Close() }()
	out := []*model.StyleSample{}
	for rows.Next() {
		var smp model.StyleSample
		var created int64
		if err := rows.Scan(&smp.ID, &smp.OwnerID, &smp.Content, &smp.Platform, &smp.ContentType, &created); err != nil {
			return nil, errors.Wrap(err, "scan sample")
		}
		smp.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, &smp)
	}
	return out, errors.WithStack(rows.Err())
}

func (s *samples) Delete(ctx context.Context, id string) (bool, error) {
	n, err := execCount(ctx, s.db, `DELETE FROM style_samples WHERE id = ?`, id)
	return n > 0, err
}

func (s *samples) DeleteByOwner(ctx context.Context, ownerID string) (int, error) {
	return execCount(ctx, s.db, `DELETE FROM style_samples WHERE owner_id = ?`, ownerID)
}

// --- helpers ---

func execCount(ctx context.Context, db *sql.DB, q string, args ...interface{}) (int, error) {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	n, err := res.RowsAffected()
	return int(n), errors.WithStack(err)
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
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

// Vectors are stored as little-endian float32 blobs.
func encodeVector(v []float32) []byte {
	b := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(f))
	}
	return b
}

func decodeVector(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return v
}
