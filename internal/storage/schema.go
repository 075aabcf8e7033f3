package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the catalog tables. Only quest definitions live here;
// progress is never written.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS levels (
			position INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			icon TEXT NOT NULL DEFAULT '',
			threshold INTEGER NOT NULL,
			achievement TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS feats (
			quest_id INTEGER NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			PRIMARY KEY (quest_id, id),
			FOREIGN KEY(quest_id) REFERENCES quests(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_position ON quests(position);`,
		`CREATE INDEX IF NOT EXISTS idx_feats_quest_position ON feats(quest_id, position);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
