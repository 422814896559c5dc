package session

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeTag returns the canonical form used to compare tags: surrounding
// whitespace trimmed and Unicode NFC applied. Case is preserved.
func NormalizeTag(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

// AddTag appends value to the tag set unless an equal tag is already present.
// It reports whether the set changed. Empty values are ignored.
func (s *Store) AddTag(ctx context.Context, value string) (bool, error) {
	value = NormalizeTag(value)
	if value == "" {
		return false, nil
	}
	var added bool
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO tags (value) VALUES (?)", value)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		added = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("add tag: %w", err)
	}
	return added, nil
}

// RemoveTag drops value from the tag set and reports whether it was present.
func (s *Store) RemoveTag(ctx context.Context, value string) (bool, error) {
	value = NormalizeTag(value)
	if value == "" {
		return false, nil
	}
	var removed bool
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE value = ?", value)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("remove tag: %w", err)
	}
	return removed, nil
}

// Tags returns the tag set in insertion order. The result is never nil.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT value FROM tags ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}
