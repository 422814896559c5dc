package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"strmctl/internal/panel"
)

// Indicators is the optimistic view of the stream and record toggles. The
// values mirror the last request the backend accepted, not server truth.
type Indicators struct {
	Streaming bool
	Recording bool
	// WasRecording is the record value last sent successfully. It decides
	// whether the next stream update carries an output file.
	WasRecording bool
	UpdatedAt    time.Time
}

// Indicators returns the current indicator state.
func (s *Store) Indicators(ctx context.Context) (Indicators, error) {
	ctx = ensureContext(ctx)
	var (
		streaming, recording, wasRecording int
		updatedAt                          sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT streaming, recording, was_recording, updated_at FROM indicators WHERE id = 1",
	).Scan(&streaming, &recording, &wasRecording, &updatedAt)
	if err != nil {
		return Indicators{}, fmt.Errorf("read indicators: %w", err)
	}
	ind := Indicators{
		Streaming:    streaming != 0,
		Recording:    recording != 0,
		WasRecording: wasRecording != 0,
	}
	if updatedAt.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, updatedAt.String); err == nil {
			ind.UpdatedAt = ts
		}
	}
	return ind, nil
}

// ApplyStreamUpdate records a stream update the backend accepted. Call it
// only after a successful request; failures must leave indicators untouched.
func (s *Store) ApplyStreamUpdate(ctx context.Context, req panel.StreamUpdateRequest) (Indicators, error) {
	now := time.Now().UTC()
	err := s.withTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE indicators SET streaming = ?, recording = ?, was_recording = ?, updated_at = ? WHERE id = 1`,
			boolToInt(req.Stream),
			boolToInt(req.Record),
			boolToInt(req.Record),
			now.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return Indicators{}, fmt.Errorf("apply stream update: %w", err)
	}
	return s.Indicators(ctx)
}
