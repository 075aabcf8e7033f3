package catalog

import (
	"context"
	"fmt"

	"epicquest/internal/engine"
	"epicquest/internal/storage"
)

// Save validates c and replaces the catalog held by repo.
func Save(ctx context.Context, repo *storage.CatalogRepo, c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	levels := make([]storage.Level, 0, len(c.Levels))
	for i, l := range c.Levels {
		levels = append(levels, storage.Level{Position: i, Name: l.Name, Icon: l.Icon, Threshold: l.Threshold, Achievement: l.Achievement})
	}
	quests := make([]storage.Quest, 0, len(c.Tasks))
	for i, t := range c.Tasks {
		q := storage.Quest{ID: int64(t.ID), Position: i, Title: t.Title, Description: t.Description}
		for j, st := range t.Subtasks {
			q.Feats = append(q.Feats, storage.Feat{QuestID: int64(t.ID), ID: st.ID, Position: j, Title: st.Title})
		}
		quests = append(quests, q)
	}
	if err := repo.Replace(ctx, levels, quests); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

// LoadStore reads the catalog held by repo. It returns ErrEmptyCatalog when
// nothing has been imported yet.
func LoadStore(ctx context.Context, repo *storage.CatalogRepo) (*Catalog, error) {
	levels, err := repo.ListLevels(ctx)
	if err != nil {
		return nil, err
	}
	quests, err := repo.ListQuests(ctx)
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 && len(quests) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{}
	for _, l := range levels {
		c.Levels = append(c.Levels, engine.Level{Name: l.Name, Icon: l.Icon, Threshold: l.Threshold, Achievement: l.Achievement})
	}
	for _, q := range quests {
		t := engine.Task{ID: int(q.ID), Title: q.Title, Description: q.Description}
		for _, f := range q.Feats {
			t.Subtasks = append(t.Subtasks, engine.Subtask{ID: f.ID, Title: f.Title})
		}
		c.Tasks = append(c.Tasks, t)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("stored catalog: %w", err)
	}
	return c, nil
}
