package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"epicquest/internal/engine"
	"epicquest/internal/ui"
)

func newLevelsCmd(a *app) *cobra.Command {
	var points int

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show the level ladder and what a point total unlocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := a.resolveCatalog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			list := engine.Achievements(cat.Levels, points)
			cur := engine.LevelFor(cat.Levels, points)

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Levels"))
			fmt.Fprintln(out, ui.LabelValue("Points", points))
			fmt.Fprintln(out, ui.LabelValue("Level", cat.Levels[cur].Name))
			if missing, ok := engine.PointsToNext(cat.Levels, points); ok {
				fmt.Fprintln(out, ui.LabelValue("Next", fmt.Sprintf("%s in %d pts", cat.Levels[cur+1].Name, missing)))
			}
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d / %d", engine.CountEarned(list), len(list))))
			fmt.Fprintln(out, "")

			for _, ach := range list {
				mark := ui.Muted.Render(ui.IconLock)
				name := ui.Muted.Render(ach.Level.Name)
				if ach.Earned {
					mark = ui.Good.Render(ui.IconDone)
					name = ui.Gold.Render(ach.Level.Name)
				}
				fmt.Fprintf(out, "%s %s %s %s\n", mark, ui.LevelIcon(ach.Level.Icon), name, ui.Muted.Render(fmt.Sprintf("(%d pts)", ach.Level.Threshold)))
				fmt.Fprintf(out, "   %s\n", ach.Level.Achievement)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&points, "points", "p", 0, "point total to evaluate")
	return cmd
}
