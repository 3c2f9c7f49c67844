package basrs

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fezjo/basrs/internal/version"
	"github.com/fezjo/basrs/pkg/commands"
	"github.com/fezjo/basrs/pkg/config"
	"github.com/fezjo/basrs/pkg/logging"
	"github.com/fezjo/basrs/pkg/runner"
	"github.com/fezjo/basrs/pkg/shells"
	"github.com/fezjo/basrs/pkg/style"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbosity   int
	configFile  string
	shell       string
	annotate    bool
	order       string
	login       bool
	interpreter string
	timeout     time.Duration

	cfg *config.Config
}

// overrides returns the config keys set explicitly on the command line.
func (o *globalOptions) overrides(cmd *cobra.Command) map[string]interface{} {
	flags := cmd.Flags()
	out := map[string]interface{}{}
	set := func(flag, key string, value interface{}) {
		if flags.Changed(flag) {
			out[key] = value
		}
	}
	set("shell", "shell", o.shell)
	set("annotate", "annotate", o.annotate)
	set("order", "order", o.order)
	set("login", "login", o.login)
	set("interpreter", "interpreter", o.interpreter)
	set("timeout", "timeout", o.timeout)
	return out
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "basrs",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(logging.Options{Verbosity: opts.verbosity})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(config.LoadOptions{
				File:      opts.configFile,
				Overrides: opts.overrides(cmd),
			})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}
			opts.cfg = cfg

			if cfg.LogToFile {
				logging.SetupLogger(logging.Options{
					Verbosity: opts.verbosity,
					ToFile:    true,
					File:      cfg.LogFile,
				})
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	pf.StringVarP(&opts.shell, "shell", "s", "fish", MsgFlagShell)
	pf.BoolVar(&opts.annotate, "annotate", false, MsgFlagAnnotate)
	pf.StringVar(&opts.order, "order", string(shells.OrderRemovalsFirst), MsgFlagOrder)
	pf.BoolVar(&opts.login, "login", false, MsgFlagLogin)
	pf.StringVar(&opts.interpreter, "interpreter", runner.DefaultInterpreter, MsgFlagInterpreter)
	pf.DurationVar(&opts.timeout, "timeout", 0, MsgFlagTimeout)

	_ = rootCmd.RegisterFlagCompletionFunc("shell", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return shells.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("order", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(shells.OrderRemovalsFirst), string(shells.OrderAdditionsFirst)}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newSourceCmd(opts))
	rootCmd.AddCommand(newEvalCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newSourceCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "source <script> [args...]",
		Short:             MsgSourceShort,
		Long:              MsgSourceLong,
		Example:           MsgSourceExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: scriptCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, runner.Script(args[0], args[1:]...))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func newEvalCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "eval <command...>",
		Short:   MsgEvalShort,
		Long:    MsgEvalLong,
		Example: MsgEvalExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, runner.Command(strings.Join(args, " ")))
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// runTranslate writes the statements to stdout and reports problems on
// stderr. A non-zero exit code without a fatal error comes back as an
// *ExitCodeError.
func runTranslate(cmd *cobra.Command, opts *globalOptions, target runner.Target) error {
	logger := logging.GetLogger("cmd.translate")

	result, err := commands.Translate(cmd.Context(), commands.TranslateOptions{
		Target: target,
		Config: opts.cfg,
	})
	if err != nil {
		return err
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), result.Output); err != nil {
		return fmt.Errorf(MsgErrWrite, err)
	}

	printer := printerFor(cmd.ErrOrStderr())
	for _, w := range result.Warnings {
		printer.Warning(MsgSkippedEntry, w)
	}
	if result.ExitStatus != 0 {
		printer.Warning(MsgScriptFailed, result.ExitStatus)
	}

	logger.Info().
		Str("shell", result.Shell).
		Int("statements", len(result.Statements)).
		Int("exitCode", result.ExitCode()).
		Msg("Translation finished")

	if code := result.ExitCode(); code != 0 {
		return &ExitCodeError{Code: code}
	}
	return nil
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var (
		format   string
		template bool
		write    bool
	)

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				result, err := commands.GenConfig(commands.GenConfigOptions{Write: write})
				if err != nil {
					return fmt.Errorf(MsgErrGenConfig, err)
				}
				if !write {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), result.ConfigContent)
					return err
				}
				printer := printerFor(cmd.ErrOrStderr())
				if len(result.FilesWritten) == 0 {
					printer.Warning(MsgConfigExisting)
				}
				for _, path := range result.FilesWritten {
					printer.Note(MsgConfigWritten, path)
				}
				return nil
			}

			out, err := config.Render(opts.cfg, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTOML, MsgFlagFormat)
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

// scriptCompletion completes the script path and leaves its arguments alone.
func scriptCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func printerFor(w io.Writer) *style.Printer {
	if f, ok := w.(*os.File); ok {
		return style.NewPrinter(f)
	}
	return style.NewPlainPrinter(w)
}
