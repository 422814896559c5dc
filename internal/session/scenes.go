package session

import (
	"context"
	"database/sql"
	"fmt"
)

// SetScenes replaces the scene option list with names, keeping their order.
func (s *Store) SetScenes(ctx context.Context, names []string) error {
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM scenes"); err != nil {
			return err
		}
		for i, name := range names {
			if _, err := tx.ExecContext(ctx, "INSERT INTO scenes (position, name) VALUES (?, ?)", i, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set scenes: %w", err)
	}
	return nil
}

// Scenes returns the scene option list in backend order.
func (s *Store) Scenes(ctx context.Context) ([]string, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM scenes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenes: %w", err)
	}
	return names, nil
}
