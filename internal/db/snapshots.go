package db

import (
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/starred/internal/star"
)

// PayloadSchemaVersion is the version stamped into every stored payload.
// A stored payload with an unknown version is reported instead of being
// silently misread.
const PayloadSchemaVersion = 1

// payload is the self-describing serialization of a snapshot row.
type payload struct {
	SchemaVersion int            `json:"schema_version"`
	Snapshot      *star.Snapshot `json:"snapshot"`
}

// StoredSnapshot is one persisted snapshot row.
type StoredSnapshot struct {
	ID       string
	TakenAt  int64
	Snapshot *star.Snapshot
}

// SaveSnapshot inserts a new snapshot row. Rows from earlier runs are kept
// as local history; LatestSnapshot always reads the newest.
func SaveSnapshot(database *sql.DB, snap *star.Snapshot, takenAt time.Time) (*StoredSnapshot, error) {
	id, err := generateULID()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload{
		SchemaVersion: PayloadSchemaVersion,
		Snapshot:      snap,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = database.Exec(
		`INSERT INTO snapshots (id, taken_at, payload) VALUES (?, ?, ?)`,
		id, takenAt.Unix(), string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	return &StoredSnapshot{ID: id, TakenAt: takenAt.Unix(), Snapshot: snap}, nil
}

// LatestSnapshot returns the most recent snapshot, or nil on first run.
func LatestSnapshot(database *sql.DB) (*StoredSnapshot, error) {
	row := database.QueryRow(
		`SELECT id, taken_at, payload FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT 1`,
	)

	var (
		id      string
		takenAt int64
		data    string
	)
	if err := row.Scan(&id, &takenAt, &data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	if p.SchemaVersion != PayloadSchemaVersion {
		return nil, fmt.Errorf("snapshot %s has unsupported schema version %d (want %d)",
			id, p.SchemaVersion, PayloadSchemaVersion)
	}

	return &StoredSnapshot{ID: id, TakenAt: takenAt, Snapshot: p.Snapshot}, nil
}

// RecentSnapshots returns up to limit snapshots, newest first.
func RecentSnapshots(database *sql.DB, limit int) ([]*StoredSnapshot, error) {
	rows, err := database.Query(
		`SELECT id, taken_at, payload FROM snapshots ORDER BY taken_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []*StoredSnapshot
	for rows.Next() {
		var (
			id      string
			takenAt int64
			data    string
		)
		if err := rows.Scan(&id, &takenAt, &data); err != nil {
			return nil, fmt.Errorf("failed to read snapshot: %w", err)
		}

		var p payload
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
		}
		if p.SchemaVersion != PayloadSchemaVersion {
			return nil, fmt.Errorf("snapshot %s has unsupported schema version %d (want %d)",
				id, p.SchemaVersion, PayloadSchemaVersion)
		}
		out = append(out, &StoredSnapshot{ID: id, TakenAt: takenAt, Snapshot: p.Snapshot})
	}
	return out, rows.Err()
}

// CountSnapshots returns the number of stored snapshot rows.
func CountSnapshots(database *sql.DB) (int, error) {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
