// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The PairKeep Authors

// Package store persists the local mood queue in SQLite. Rows carry a
// synced flag and the remote id assigned on upload; they are never deleted,
// synced rows double as the offline history.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/pairkeep/pairkeep/internal/logger"
	"github.com/pairkeep/pairkeep/models"
)

var moodColumns = []string{
	"local_id", "owner_id", "moods", "note", "captured_day", "captured_at", "synced", "remote_id",
}

type moodRepository struct {
	*DB
	logger *logger.Logger
}

// NewMoodRepository creates the SQLite-backed [QueueStore].
func NewMoodRepository(db *DB, logger *logger.Logger) QueueStore {
	return &moodRepository{DB: db, logger: logger}
}

// Add implements [QueueStore]. The insert relies on the unique
// (owner_id, captured_day) index: a violation means the day already has an
// entry, which is then overwritten and reset to unsynced.
func (r *moodRepository) Add(ctx context.Context, entry models.MoodEntry) (models.MoodEntry, error) {
	log := logger.FromContext(ctx)

	moodsJSON, err := json.Marshal(entry.Moods)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to encode moods: %w", err)
	}

	query, args, err := sq.Insert("moods").
		Columns("owner_id", "moods", "note", "captured_day", "captured_at", "synced", "remote_id").
		Values(entry.OwnerID, string(moodsJSON), entry.Note, entry.CapturedDay, entry.CapturedAt, false, "").
		ToSql()
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug().
				Str("func", "moodRepository.Add").
				Str("owner_id", entry.OwnerID).
				Str("day", entry.CapturedDay).
				Msg("entry exists for day, replacing it")
			return r.replaceForDay(ctx, entry, string(moodsJSON))
		}
		log.Err(err).
			Str("func", "moodRepository.Add").
			Str("owner_id", entry.OwnerID).
			Msg("failed to insert mood entry")
		return models.MoodEntry{}, fmt.Errorf("failed to insert mood entry: %w", err)
	}

	entry.LocalID, err = res.LastInsertId()
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to read inserted id: %w", err)
	}
	entry.Synced = false
	entry.RemoteID = ""

	return entry, nil
}

// replaceForDay overwrites the existing row for the entry's day and returns
// it with the row's local id.
func (r *moodRepository) replaceForDay(ctx context.Context, entry models.MoodEntry, moodsJSON string) (models.MoodEntry, error) {
	query, args, err := sq.Update("moods").
		Set("moods", moodsJSON).
		Set("note", entry.Note).
		Set("captured_at", entry.CapturedAt).
		Set("synced", false).
		Set("remote_id", "").
		Where(sq.Eq{"owner_id": entry.OwnerID, "captured_day": entry.CapturedDay}).
		ToSql()
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to replace mood entry: %w", err)
	}

	existing, err := r.ForDay(ctx, entry.OwnerID, entry.CapturedDay)
	if err != nil {
		return models.MoodEntry{}, err
	}
	if existing == nil {
		return models.MoodEntry{}, fmt.Errorf("replaced mood entry not found for day %s", entry.CapturedDay)
	}

	return *existing, nil
}

// All implements [QueueStore].
func (r *moodRepository) All(ctx context.Context, ownerID string) ([]models.MoodEntry, error) {
	return r.selectEntries(ctx, sq.Eq{"owner_id": ownerID})
}

// Unsynced implements [QueueStore].
func (r *moodRepository) Unsynced(ctx context.Context, ownerID string) ([]models.MoodEntry, error) {
	return r.selectEntries(ctx, sq.Eq{"owner_id": ownerID, "synced": false})
}

func (r *moodRepository) selectEntries(ctx context.Context, where sq.Eq) ([]models.MoodEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(moodColumns...).
		From("moods").
		Where(where).
		OrderBy("captured_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "moodRepository.selectEntries").
			Msg("failed to query mood entries")
		return nil, fmt.Errorf("failed to query mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		entry, scanErr := scanMood(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "moodRepository.selectEntries").
				Msg("failed to scan mood entry row")
			return nil, scanErr
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating mood entry rows: %w", rowsErr)
	}

	return entries, nil
}

// ForDay implements [QueueStore].
func (r *moodRepository) ForDay(ctx context.Context, ownerID, day string) (*models.MoodEntry, error) {
	query, args, err := sq.Select(moodColumns...).
		From("moods").
		Where(sq.Eq{"owner_id": ownerID, "captured_day": day}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	entry, err := scanMood(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &entry, nil
}

// MarkSynced implements [QueueStore].
func (r *moodRepository) MarkSynced(ctx context.Context, localID int64, remoteID string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("moods").
		Set("synced", true).
		Set("remote_id", remoteID).
		Where(sq.Eq{"local_id": localID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "moodRepository.MarkSynced").
			Int64("local_id", localID).
			Msg("failed to mark mood entry synced")
		return fmt.Errorf("failed to mark mood entry synced: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mood entry %d not found", localID)
	}

	return nil
}

// PendingCount implements [QueueStore].
func (r *moodRepository) PendingCount(ctx context.Context, ownerID string) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("moods").
		Where(sq.Eq{"owner_id": ownerID, "synced": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending mood entries: %w", err)
	}

	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMood(row scanner) (models.MoodEntry, error) {
	var (
		entry     models.MoodEntry
		moodsJSON string
	)

	err := row.Scan(
		&entry.LocalID,
		&entry.OwnerID,
		&moodsJSON,
		&entry.Note,
		&entry.CapturedDay,
		&entry.CapturedAt,
		&entry.Synced,
		&entry.RemoteID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MoodEntry{}, err
		}
		return models.MoodEntry{}, fmt.Errorf("failed to scan mood entry row: %w", err)
	}

	if err = json.Unmarshal([]byte(moodsJSON), &entry.Moods); err != nil {
		return models.MoodEntry{}, fmt.Errorf("failed to decode moods column: %w", err)
	}

	return entry, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
