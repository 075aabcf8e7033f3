// Package catalog loads the level table and the quest list the engine plays.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"

	"epicquest/internal/engine"
)

//go:embed default.toml
var defaultTOML []byte

// Catalog is an immutable level table plus the ordered quests.
type Catalog struct {
	Levels []engine.Level
	Tasks  []engine.Task
}

// TotalSubtasks counts every feat across all quests.
func (c *Catalog) TotalSubtasks() int {
	n := 0
	for _, t := range c.Tasks {
		n += len(t.Subtasks)
	}
	return n
}

// NewEngine starts a fresh run over the catalog.
func (c *Catalog) NewEngine(opts ...engine.Option) *engine.Engine {
	return engine.New(c.Levels, c.Tasks, opts...)
}

type fileCatalog struct {
	Levels []fileLevel `toml:"levels"`
	Quests []fileQuest `toml:"quests"`
}

type fileLevel struct {
	Name        string `toml:"name"`
	Icon        string `toml:"icon"`
	Threshold   int    `toml:"threshold"`
	Achievement string `toml:"achievement"`
}

type fileQuest struct {
	ID          int        `toml:"id"`
	Title       string     `toml:"title"`
	Description string     `toml:"description,omitempty"`
	Feats       []fileFeat `toml:"feats"`
}

type fileFeat struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultTOML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Parse decodes a TOML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	md, err := toml.Decode(string(data), &fc)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, invalid("", "unknown keys: %s", strings.Join(keys, ", "))
	}

	c := fromFile(fc)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and parses a TOML catalog from fs.
func LoadFile(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes the catalog as TOML in the same shape Parse reads.
func (c *Catalog) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(toFile(c)); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate checks the level ladder and quest list. All problems are joined.
func (c *Catalog) Validate() error {
	var errs []error

	if len(c.Levels) == 0 {
		errs = append(errs, invalid("levels", "at least one level is required"))
	}
	for i, l := range c.Levels {
		field := fmt.Sprintf("levels[%d]", i)
		if strings.TrimSpace(l.Name) == "" {
			errs = append(errs, invalid(field, "name is required"))
		}
		if i == 0 && l.Threshold != 0 {
			errs = append(errs, invalid(field, "first threshold must be 0, got %d", l.Threshold))
		}
		if i > 0 && l.Threshold <= c.Levels[i-1].Threshold {
			errs = append(errs, invalid(field, "threshold %d must exceed %d", l.Threshold, c.Levels[i-1].Threshold))
		}
	}

	if len(c.Tasks) == 0 {
		errs = append(errs, invalid("quests", "at least one quest is required"))
	}
	seenTask := map[int]bool{}
	for i, t := range c.Tasks {
		field := fmt.Sprintf("quests[%d]", i)
		if seenTask[t.ID] {
			errs = append(errs, invalid(field, "duplicate id %d", t.ID))
		}
		seenTask[t.ID] = true
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, invalid(field, "title is required"))
		}
		if len(t.Subtasks) == 0 {
			errs = append(errs, invalid(field, "at least one feat is required"))
		}
		seenSub := map[string]bool{}
		for j, st := range t.Subtasks {
			sf := fmt.Sprintf("%s.feats[%d]", field, j)
			if strings.TrimSpace(st.ID) == "" {
				errs = append(errs, invalid(sf, "id is required"))
			} else if seenSub[st.ID] {
				errs = append(errs, invalid(sf, "duplicate id %q", st.ID))
			}
			seenSub[st.ID] = true
			if strings.TrimSpace(st.Title) == "" {
				errs = append(errs, invalid(sf, "title is required"))
			}
		}
	}

	return errors.Join(errs...)
}

func fromFile(fc fileCatalog) *Catalog {
	c := &Catalog{}
	for _, l := range fc.Levels {
		c.Levels = append(c.Levels, engine.Level{
			Name:        strings.TrimSpace(l.Name),
			Icon:        strings.TrimSpace(l.Icon),
			Threshold:   l.Threshold,
			Achievement: strings.TrimSpace(l.Achievement),
		})
	}
	for _, q := range fc.Quests {
		t := engine.Task{ID: q.ID, Title: strings.TrimSpace(q.Title), Description: strings.TrimSpace(q.Description)}
		for _, f := range q.Feats {
			t.Subtasks = append(t.Subtasks, engine.Subtask{ID: strings.TrimSpace(f.ID), Title: strings.TrimSpace(f.Title)})
		}
		c.Tasks = append(c.Tasks, t)
	}
	return c
}

func toFile(c *Catalog) fileCatalog {
	var fc fileCatalog
	for _, l := range c.Levels {
		fc.Levels = append(fc.Levels, fileLevel(l))
	}
	for _, t := range c.Tasks {
		q := fileQuest{ID: t.ID, Title: t.Title, Description: t.Description}
		for _, st := range t.Subtasks {
			q.Feats = append(q.Feats, fileFeat{ID: st.ID, Title: st.Title})
		}
		fc.Quests = append(fc.Quests, q)
	}
	return fc
}
