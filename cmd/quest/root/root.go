package root

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"epicquest/internal/config"
	"epicquest/internal/logging"
	"epicquest/internal/ui"
)

const Version = "0.1.0"

// app carries what every subcommand needs once flags and config are resolved.
type app struct {
	v       *viper.Viper
	fs      afero.Fs
	cfgFile string
	cfg     *config.Config
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:           "quest",
		Short:         "Epicquest: level up by finishing quests one feat at a time",
		Long:          "Epicquest is a terminal quest tracker. Start a feat, finish it before the points decay, and climb the level ladder.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(a.v, a.cfgFile); err != nil {
				return err
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is $HOME/.epicquest.yaml or ./.epicquest.yaml)")
	pf.String("catalog", "", "TOML quest catalog to play instead of the default")
	pf.String("db", "", "SQLite catalog database")
	pf.String("log-file", "", "write logs to this file")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.BoolP("verbose", "v", false, "enable verbose output")

	_ = a.v.BindPFlag(config.KeyCatalog, pf.Lookup("catalog"))
	_ = a.v.BindPFlag(config.KeyDB, pf.Lookup("db"))
	_ = a.v.BindPFlag(config.KeyLogFile, pf.Lookup("log-file"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyVerbose, pf.Lookup("verbose"))

	cmd.AddCommand(
		newBoardCmd(a),
		newLevelsCmd(a),
		newCatalogCmd(a),
	)
	return cmd
}

// logger opens the configured log sink. fallback is used when no log file is set.
func (a *app) logger(fallback io.Writer) (*log.Logger, func() error, error) {
	return logging.New(logging.Options{
		File:     a.cfg.LogFile,
		Level:    a.cfg.LogLevel,
		Fallback: fallback,
	})
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
