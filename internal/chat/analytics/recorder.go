// Package analytics stores anonymous intent hits so the team can see which
// questions visitors ask. Message text is never stored.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/errors"

	"github.com/google/uuid"
)

const (
	ChannelHTTP  = "http"
	ChannelZeebe = "zeebe"
)

const schema = `CREATE TABLE IF NOT EXISTS chat_intent_events (
	id              UUID PRIMARY KEY,
	intent          TEXT NOT NULL,
	matched_trigger TEXT NOT NULL DEFAULT '',
	channel         TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
)`

const insertEvent = `INSERT INTO chat_intent_events (id, intent, matched_trigger, channel, created_at) VALUES ($1, $2, $3, $4, $5)`

const countSince = `SELECT intent, COUNT(*) FROM chat_intent_events WHERE created_at >= $1 GROUP BY intent`

// Recorder writes intent events. A nil *Recorder records nothing.
type Recorder struct {
	db  *sql.DB
	now func() time.Time
}

func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db, now: time.Now}
}

// EnsureSchema creates the events table if it does not exist.
func (r *Recorder) EnsureSchema(ctx context.Context) error {
	if r == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create chat_intent_events: %w", err)
	}
	return nil
}

// Record stores which intent answered a message on channel.
func (r *Recorder) Record(ctx context.Context, result intent.Result, channel string) error {
	if r == nil {
		return nil
	}

	_, err := r.db.ExecContext(ctx, insertEvent,
		uuid.NewString(),
		string(result.Intent),
		result.Trigger,
		channel,
		r.now().UTC(),
	)
	if err != nil {
		return errors.NewAnalyticsWriteFailedError(err)
	}
	return nil
}

// CountsSince returns hits per intent recorded at or after since.
func (r *Recorder) CountsSince(ctx context.Context, since time.Time) (map[intent.Intent]int64, error) {
	counts := make(map[intent.Intent]int64)
	if r == nil {
		return counts, nil
	}

	rows, err := r.db.QueryContext(ctx, countSince, since.UTC())
	if err != nil {
		return nil, errors.NewAnalyticsReadFailedError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, errors.NewAnalyticsReadFailedError(err)
		}
		counts[intent.Intent(name)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAnalyticsReadFailedError(err)
	}

	return counts, nil
}
