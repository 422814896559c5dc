package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"strmctl/internal/panel"
	"strmctl/internal/services"
)

// CategoryOption is a category picked from search results. Chosen marks the
// option sent with the next Twitch metadata update.
type CategoryOption struct {
	panel.Category
	Chosen bool
}

// ReplaceSearchResults swaps the displayed category cards for results, in the
// given order.
func (s *Store) ReplaceSearchResults(ctx context.Context, results []panel.Category) error {
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM search_results"); err != nil {
			return err
		}
		for i, entry := range results {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO search_results (position, category_id, name, box_art_url) VALUES (?, ?, ?, ?)",
				i, entry.ID, entry.Name, entry.BoxArtURL,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace search results: %w", err)
	}
	return nil
}

// SearchResults returns the cards from the last search.
func (s *Store) SearchResults(ctx context.Context) ([]panel.Category, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT category_id, name, box_art_url FROM search_results ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list search results: %w", err)
	}
	defer rows.Close()

	results := []panel.Category{}
	for rows.Next() {
		var entry panel.Category
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.BoxArtURL); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search results: %w", err)
	}
	return results, nil
}

// SelectCategory adds the card with identifier id from the last search to the
// category options. Selecting an identifier that is already an option is a
// no-op. The first option added while none is chosen becomes the chosen one.
func (s *Store) SelectCategory(ctx context.Context, id string) (panel.Category, bool, error) {
	var (
		entry panel.Category
		added bool
	)
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"SELECT category_id, name, box_art_url FROM search_results WHERE category_id = ? ORDER BY position LIMIT 1",
			id,
		).Scan(&entry.ID, &entry.Name, &entry.BoxArtURL)
		if errors.Is(err, sql.ErrNoRows) {
			return services.Wrap(services.ErrNotFound, "twitch.category", "select", fmt.Sprintf("category %q is not in the last search results", id), nil)
		}
		if err != nil {
			return err
		}

		var chosenCount int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM category_options WHERE chosen = 1").Scan(&chosenCount); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO category_options (category_id, name, box_art_url, chosen) VALUES (?, ?, ?, ?)",
			entry.ID, entry.Name, entry.BoxArtURL, boolToInt(chosenCount == 0),
		)
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
		if errors.Is(err, services.ErrNotFound) {
			return panel.Category{}, false, err
		}
		return panel.Category{}, false, fmt.Errorf("select category: %w", err)
	}
	return entry, added, nil
}

// ChooseCategory marks the option with identifier id as the one to send.
func (s *Store) ChooseCategory(ctx context.Context, id string) (panel.Category, error) {
	var entry panel.Category
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"SELECT category_id, name, box_art_url FROM category_options WHERE category_id = ?", id,
		).Scan(&entry.ID, &entry.Name, &entry.BoxArtURL)
		if errors.Is(err, sql.ErrNoRows) {
			return services.Wrap(services.ErrNotFound, "twitch.category", "choose", fmt.Sprintf("category %q is not a selected option", id), nil)
		}
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE category_options SET chosen = (category_id = ?)", id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return panel.Category{}, err
		}
		return panel.Category{}, fmt.Errorf("choose category: %w", err)
	}
	return entry, nil
}

// CategoryOptions returns the selected options in insertion order.
func (s *Store) CategoryOptions(ctx context.Context) ([]CategoryOption, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT category_id, name, box_art_url, chosen FROM category_options ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list category options: %w", err)
	}
	defer rows.Close()

	options := []CategoryOption{}
	for rows.Next() {
		var (
			opt    CategoryOption
			chosen int
		)
		if err := rows.Scan(&opt.ID, &opt.Name, &opt.BoxArtURL, &chosen); err != nil {
			return nil, fmt.Errorf("scan category option: %w", err)
		}
		opt.Chosen = chosen != 0
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category options: %w", err)
	}
	return options, nil
}

// ChosenCategory returns the chosen option. The boolean is false when no
// option is chosen.
func (s *Store) ChosenCategory(ctx context.Context) (panel.Category, bool, error) {
	ctx = ensureContext(ctx)
	var entry panel.Category
	err := s.db.QueryRowContext(ctx,
		"SELECT category_id, name, box_art_url FROM category_options WHERE chosen = 1 LIMIT 1",
	).Scan(&entry.ID, &entry.Name, &entry.BoxArtURL)
	if errors.Is(err, sql.ErrNoRows) {
		return panel.Category{}, false, nil
	}
	if err != nil {
		return panel.Category{}, false, fmt.Errorf("read chosen category: %w", err)
	}
	return entry, true, nil
}
