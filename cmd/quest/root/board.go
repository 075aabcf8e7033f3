package root

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"epicquest/internal/tui"
)

func newBoardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the quest board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// The board owns the terminal; logs only go to a file when one is set.
			logger, closeLog, err := a.logger(nil)
			if err != nil {
				return err
			}
			defer closeLog()

			cat, src, err := a.resolveCatalog(ctx)
			if err != nil {
				return err
			}
			logger = logger.With("session", uuid.NewString())
			logger.Info("board opened", "source", string(src), "quests", len(cat.Tasks), "feats", cat.TotalSubtasks())

			err = tui.RunBoard(ctx, cat.NewEngine(), tui.Options{
				TickInterval:    a.cfg.TickInterval,
				OverlayDuration: a.cfg.OverlayDuration,
				Logger:          logger,
			}, cmd.OutOrStdout())
			if err != nil {
				logger.Error("board stopped", "err", err)
				return err
			}
			logger.Info("board closed")
			return nil
		},
	}

	return cmd
}
