package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cardmark"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ cardmark.CaptureService = (*CaptureService)(nil)

// CaptureService implements cardmark.CaptureService using SQLite.
type CaptureService struct {
	db *DB
}

// NewCaptureService creates a new CaptureService.
func NewCaptureService(db *DB) *CaptureService {
	return &CaptureService{db: db}
}

// hashText computes the xxHash of text as a hex string.
func hashText(text string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(text))
	return hex.EncodeToString(b[:])
}

// CreateCapture records a capture, assigning its ID, text hash and timestamp.
func (s *CaptureService) CreateCapture(ctx context.Context, c *cardmark.Capture) error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.ID = uuid.New().String()
	c.CapturedAt = time.Now().UTC().Truncate(time.Second)
	c.TextHash = hashText(c.Text)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO captures (id, bookmark_id, src, title, text, text_hash, outcome, status, error, degraded, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.BookmarkID, c.Src, c.Title, c.Text, c.TextHash, c.Outcome, c.Status, c.Error,
		c.Degraded, formatTimestamp(c.CapturedAt))

	return err
}

// FindCaptures retrieves captures matching the filter, newest first.
func (s *CaptureService) FindCaptures(ctx context.Context, filter cardmark.CaptureFilter) ([]*cardmark.Capture, error) {
	var cond conditions
	cond.eq("src", filter.Src)
	cond.eq("outcome", filter.Outcome)

	var query strings.Builder
	query.WriteString(`SELECT id, bookmark_id, src, title, text, text_hash, outcome, status, error, degraded, captured_at
		FROM captures`)
	query.WriteString(cond.where())
	query.WriteString(" ORDER BY captured_at DESC, rowid DESC")
	cond.paginate(&query, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), cond.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*cardmark.Capture
	for rows.Next() {
		var c cardmark.Capture
		var capturedAt string

		if err := rows.Scan(&c.ID, &c.BookmarkID, &c.Src, &c.Title, &c.Text, &c.TextHash,
			&c.Outcome, &c.Status, &c.Error, &c.Degraded, &capturedAt); err != nil {
			return nil, err
		}

		if c.CapturedAt, err = parseTimestamp(capturedAt, "captured_at"); err != nil {
			return nil, err
		}

		captures = append(captures, &c)
	}

	return captures, rows.Err()
}

// DeleteCaptures removes captures recorded before the given time.
func (s *CaptureService) DeleteCaptures(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM captures WHERE captured_at < ?`,
		formatTimestamp(before))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
