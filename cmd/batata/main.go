// Command batata is a small modal terminal text editor.
package main

import (
	"fmt"
	"os"

	"example.com/batata/internal/app"
	"example.com/batata/pkg/config"
	"example.com/batata/pkg/logs"
	"example.com/batata/pkg/store"
	"example.com/batata/pkg/syntax"
	"github.com/spf13/cobra"
)

const welcome = "TIP: Ctrl-S to save | Ctrl-Q to quit | Ctrl-F to find"

type options struct {
	configPath string
	logFile    string
	logPretty  bool
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "batata [file]",
		Short:         "A modal terminal text editor",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := setup(cmd, opts, args)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			defer sess.Logger.Close()
			if err := app.NewRunner(sess).Run(); err != nil {
				sess.Logger.Error().Err(err).Msg("run.error")
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return err
			}
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.configPath, "config", ".batatarc", "path to the key=value configuration file")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file (default from BATATA_LOG / BATATA_LOG_FILE)")
	fs.BoolVar(&opts.logPretty, "log-pretty", false, "human-readable log lines")
	fs.StringVar(&opts.logLevel, "log-level", os.Getenv("BATATA_LOG_LEVEL"), "log level: trace, debug, info, warn or error")
	config.RegisterFlags(fs)
	return cmd
}

// setup loads the configuration, the logger and the language registry and
// opens the file named in args, if any.
func setup(cmd *cobra.Command, opts options, args []string) (*app.Session, error) {
	cfg, err := config.Load(opts.configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}
	log := logs.NewFromEnv()
	if opts.logFile != "" {
		if log, err = logs.New(logs.Options{File: opts.logFile, Pretty: opts.logPretty, Level: opts.logLevel}); err != nil {
			return nil, err
		}
	}
	langs, err := syntax.LoadRegistry(cfg.Languages)
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	log.Info().
		Str("config", opts.configPath).
		Int("tab_length", cfg.TabLength).
		Int("undo_stack_size", cfg.UndoStackSize).
		Str("theme", cfg.Theme).
		Int("languages", len(langs.List())).
		Msg("startup")

	sess := app.NewSession(app.Options{Config: cfg, Store: store.FileStore{}, Languages: langs, Logger: log})
	if len(args) == 1 {
		if err := sess.Open(args[0]); err != nil {
			_ = log.Close()
			return nil, err
		}
	}
	sess.SetMessage(welcome)
	return sess, nil
}
