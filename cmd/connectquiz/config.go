package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"connectquiz/internal/app"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type options struct {
	cfg     app.Config
	version bool
}

func run(ctx context.Context, cfg app.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.Run(ctx)
}

func newCmd(opts *options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CONNECTQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "connectquiz",
		Short:         "A two-team connections and sequences quiz for the terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), opts.cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	c := &opts.cfg
	fs.StringVarP(&c.QuestionsPath, "questions", "q", "", "question bank to play, yaml or text manifest (env: CONNECTQUIZ_QUESTIONS)")
	fs.BoolVar(&c.Demo, "demo", false, "play the built-in sample bank on autopilot (env: CONNECTQUIZ_DEMO)")
	fs.DurationVar(&c.Timing.CountIn, "count-in", c.Timing.CountIn, "pause before the first clue (env: CONNECTQUIZ_COUNT_IN)")
	fs.DurationVar(&c.Timing.Answer, "answer-time", c.Timing.Answer, "time the offered team has to answer (env: CONNECTQUIZ_ANSWER_TIME)")
	fs.DurationVar(&c.Timing.Warning, "warning", c.Timing.Warning, "final countdown highlighted before time runs out (env: CONNECTQUIZ_WARNING)")
	fs.StringVar(&c.FirstTeam, "first-team", c.FirstTeam, "team offered the first question, red or blue (env: CONNECTQUIZ_FIRST_TEAM)")
	fs.Uint64Var(&c.Seed, "seed", 0, "shuffle seed, 0 picks one at random (env: CONNECTQUIZ_SEED)")
	fs.StringVar(&c.UI.StyleVariant, "style", c.UI.StyleVariant, "modern_arcade, cozy_clean or retro_terminal (env: CONNECTQUIZ_STYLE)")
	fs.StringVar(&c.UI.MotionLevel, "motion", c.UI.MotionLevel, "score animation: off, reduced or full (env: CONNECTQUIZ_MOTION)")
	fs.BoolVar(&c.ASCIIOnly, "ascii", false, "avoid non-ascii glyphs (env: CONNECTQUIZ_ASCII)")
	fs.StringVar(&c.DataDir, "data-dir", "", "directory for the match history database (env: CONNECTQUIZ_DATA_DIR)")
	fs.BoolVar(&c.NoHistory, "no-history", false, "do not record games (env: CONNECTQUIZ_NO_HISTORY)")
	fs.StringVar(&c.LogPath, "log", "", "write JSON logs to this file (env: CONNECTQUIZ_LOG)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error (env: CONNECTQUIZ_LOG_LEVEL)")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging and layout overlay (env: CONNECTQUIZ_DEBUG)")
	fs.StringVar(&c.DevStateDir, "dev-state-dir", "", "mirror the current screen into dev_state.json here (env: CONNECTQUIZ_DEV_STATE_DIR)")
	fs.BoolVarP(&opts.version, "version", "V", false, "display version and exit (env: CONNECTQUIZ_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("connectquiz v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
