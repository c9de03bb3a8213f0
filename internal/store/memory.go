package store

import (
	"context"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	"github.com/bowerhall/cadence/internal/logger"
)

// SaveMemory embeds content and stores it as a memory entry for future
// retrieval. Re-saving the same (user, source, sourceID) overwrites both the
// text and the vector. Embedding failures propagate; the artifact the memory
// describes is already committed, so callers log and move on.
func (s *Store) SaveMemory(ctx context.Context, userID int64, source string, sourceID int64, content string) error {
	if s.embedder == nil {
		return fmt.Errorf("no embedder configured")
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed memory: %w", err)
	}
	if len(embedding) == 0 {
		return fmt.Errorf("embedder returned an empty vector")
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memories (user_id, source, source_id, content)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, source, source_id) DO UPDATE SET content = excluded.content`,
		userID, source, sourceID, content)
	if err != nil {
		return err
	}

	var memoryID int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM memories WHERE user_id = ? AND source = ? AND source_id = ?`,
		userID, source, sourceID).Scan(&memoryID)
	if err != nil {
		return err
	}

	// stale vector from a previous save of the same artifact
	if _, err := tx.ExecContext(ctx, `DELETE FROM vec_memories WHERE memory_id = ?`, memoryID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO vec_memories (memory_id, embedding) VALUES (?, ?)`,
		memoryID, blob); err != nil {
		return err
	}

	return tx.Commit()
}

// Recall returns the content of the limit nearest memories for a user,
// most similar first. Retrieval is best-effort context: if no embedder is
// configured, or the query cannot be embedded, it returns nothing rather
// than an error.
func (s *Store) Recall(ctx context.Context, userID int64, query string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}

	if s.embedder == nil {
		return nil, nil
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("recall embed failed", "user", userID, "error", err)
		return nil, nil
	}
	if len(embedding) == 0 {
		return nil, nil
	}

	blob, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.content
		FROM vec_memories v
		JOIN memories m ON v.memory_id = m.id
		WHERE m.user_id = ?
		  AND v.embedding MATCH ?
		  AND k = ?
		ORDER BY v.distance`,
		userID, blob, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return contents, nil
}

// GetMemory fetches one memory entry by its natural key.
func (s *Store) GetMemory(userID int64, source string, sourceID int64) (*Memory, error) {
	var m Memory
	err := s.db.QueryRow(`
		SELECT id, user_id, source, source_id, content FROM memories
		WHERE user_id = ? AND source = ? AND source_id = ?`,
		userID, source, sourceID).Scan(&m.ID, &m.UserID, &m.Source, &m.SourceID, &m.Content)
	if err != nil {
		return nil, err
	}

	return &m, nil
}
