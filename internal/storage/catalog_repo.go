package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// Replace swaps the stored catalog for levels and quests in one transaction.
// Positions are taken from slice order.
func (r *CatalogRepo) Replace(ctx context.Context, levels []Level, quests []Quest) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, stmt := range []string{`DELETE FROM feats`, `DELETE FROM quests`, `DELETE FROM levels`} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("catalog clear: %w", err)
			}
		}

		for i, l := range levels {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO levels (position, name, icon, threshold, achievement)
				VALUES (?, ?, ?, ?, ?)
			`, i, l.Name, l.Icon, l.Threshold, l.Achievement); err != nil {
				return fmt.Errorf("level insert: %w", err)
			}
		}

		for i, q := range quests {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO quests (id, position, title, description)
				VALUES (?, ?, ?, ?)
			`, q.ID, i, q.Title, q.Description); err != nil {
				return fmt.Errorf("quest insert: %w", err)
			}
			for j, f := range q.Feats {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO feats (quest_id, id, position, title)
					VALUES (?, ?, ?, ?)
				`, q.ID, f.ID, j, f.Title); err != nil {
					return fmt.Errorf("feat insert: %w", err)
				}
			}
		}
		return nil
	})
}

func (r *CatalogRepo) ListLevels(ctx context.Context) ([]Level, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT position, name, icon, threshold, achievement
		FROM levels
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("level list: %w", err)
	}
	defer rows.Close()

	var out []Level
	for rows.Next() {
		var l Level
		if err := rows.Scan(&l.Position, &l.Name, &l.Icon, &l.Threshold, &l.Achievement); err != nil {
			return nil, fmt.Errorf("level scan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("level rows: %w", err)
	}
	return out, nil
}

// ListQuests returns quests in play order with their feats attached.
func (r *CatalogRepo) ListQuests(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, position, title, description
		FROM quests
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	var quests []Quest
	index := map[int64]int{}
	for rows.Next() {
		var q Quest
		if err := rows.Scan(&q.ID, &q.Position, &q.Title, &q.Description); err != nil {
			rows.Close()
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		index[q.ID] = len(quests)
		quests = append(quests, q)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	rows.Close()

	featRows, err := r.db.QueryContext(ctx, `
		SELECT quest_id, id, position, title
		FROM feats
		ORDER BY quest_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("feat list: %w", err)
	}
	defer featRows.Close()
	for featRows.Next() {
		var f Feat
		if err := featRows.Scan(&f.QuestID, &f.ID, &f.Position, &f.Title); err != nil {
			return nil, fmt.Errorf("feat scan: %w", err)
		}
		if i, ok := index[f.QuestID]; ok {
			quests[i].Feats = append(quests[i].Feats, f)
		}
	}
	if err := featRows.Err(); err != nil {
		return nil, fmt.Errorf("feat rows: %w", err)
	}
	return quests, nil
}
