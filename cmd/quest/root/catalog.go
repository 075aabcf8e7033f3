package root

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"epicquest/internal/catalog"
	"epicquest/internal/storage"
	"epicquest/internal/ui"
)

// dbPath returns the configured catalog database, or the default one under
// the home directory.
func (a *app) dbPath() (string, error) {
	if a.cfg.DB != "" {
		return a.cfg.DB, nil
	}
	return storage.DefaultDBPath()
}

// resolveCatalog reads the default database only when a previous import
// created it, so a fresh install still plays the built-in catalog.
func (a *app) resolveCatalog(ctx context.Context) (*catalog.Catalog, catalog.Source, error) {
	dbPath := a.cfg.DB
	if dbPath == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, "", err
		}
		ok, err := afero.Exists(a.fs, p)
		if err != nil {
			return nil, "", fmt.Errorf("stat %s: %w", p, err)
		}
		if ok {
			dbPath = p
		}
	}
	return catalog.Resolve(ctx, a.fs, a.cfg.Catalog, dbPath)
}

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with quest catalogs",
	}
	cmd.AddCommand(
		newCatalogShowCmd(a),
		newCatalogValidateCmd(a),
		newCatalogExportCmd(a),
		newCatalogImportCmd(a),
	)
	return cmd
}

func newCatalogShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the catalog the board would play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, src, err := a.resolveCatalog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Quest Catalog"))
			fmt.Fprintln(out, ui.LabelValue("Source", src))
			fmt.Fprintln(out, "")
			for _, t := range cat.Tasks {
				fmt.Fprintf(out, "%s %s\n", ui.H2.Render(fmt.Sprintf("#%d", t.ID)), ui.H2.Render(t.Title))
				if t.Description != "" {
					fmt.Fprintf(out, "   %s\n", ui.Muted.Render(t.Description))
				}
				for _, st := range t.Subtasks {
					fmt.Fprintf(out, "   - %s %s\n", ui.Muted.Render(st.ID), st.Title)
				}
			}
			return nil
		},
	}
}

func newCatalogValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a TOML catalog (default: the configured one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cat *catalog.Catalog
				err error
			)
			if len(args) == 1 {
				cat, err = catalog.LoadFile(a.fs, args[0])
			} else {
				cat, _, err = a.resolveCatalog(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d levels, %d quests, %d feats\n",
				ui.Good.Render(ui.IconDone+" Valid:"), len(cat.Levels), len(cat.Tasks), cat.TotalSubtasks())
			return nil
		},
	}
}

func newCatalogExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the resolved catalog as TOML (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := a.resolveCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return cat.Encode(cmd.OutOrStdout())
			}
			var buf bytes.Buffer
			if err := cat.Encode(&buf); err != nil {
				return err
			}
			if err := afero.WriteFile(a.fs, args[0], buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconScroll+" Exported"), ui.Muted.Render(args[0]))
			return nil
		},
	}
}

func newCatalogImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate a TOML catalog and store it in the catalog database",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, closeLog, err := a.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			cat, err := catalog.LoadFile(a.fs, args[0])
			if err != nil {
				return err
			}

			dbPath, err := a.dbPath()
			if err != nil {
				return err
			}
			db, err := storage.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := catalog.Save(ctx, storage.NewCatalogRepo(db), cat); err != nil {
				return err
			}
			logger.Debug("catalog imported", "file", args[0], "db", dbPath, "quests", len(cat.Tasks))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d quests → %s\n", ui.Good.Render(ui.IconScroll+" Imported"), len(cat.Tasks), ui.Muted.Render(dbPath))
			return nil
		},
	}
}
