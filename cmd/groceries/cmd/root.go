// Package cmd implements the groceries CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/groceries/internal/api/client"
	"github.com/donaldgifford/groceries/internal/config"
	"github.com/donaldgifford/groceries/internal/credential"
	"github.com/donaldgifford/groceries/internal/groceries"
	"github.com/donaldgifford/groceries/internal/metrics"
	"github.com/donaldgifford/groceries/internal/prompt"
	"github.com/donaldgifford/groceries/internal/wizard"
	"github.com/donaldgifford/groceries/pkg/logger"
)

const envPrefix = "GROCERIES"

// setupAnnotation tells the root command which wizard steps a subcommand
// needs before it runs. Commands without it get no setup at all.
const setupAnnotation = "groceries/setup"

const (
	setupFull = "api,token"
	setupAPI  = "api"
	setupNone = "none"
)

// errReported marks failures whose message was already shown to the user.
var errReported = errors.New("reported")

// app carries the per-invocation state shared by every subcommand.
type app struct {
	v          *viper.Viper
	settings   config.Settings
	logger     *slog.Logger
	cfg        *config.Store
	creds      *credential.Store
	httpClient *http.Client
	// prompter is shared by the wizard and login so buffered input is
	// never split across two readers.
	prompter prompt.Prompter
}

// Root returns a fresh root cobra command for documentation generation.
func Root() *cobra.Command {
	return NewRootCmd()
}

// Execute runs the CLI and exits with status 1 on any failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Each call gets its own viper
// instance, so trees never share settings.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: logger.Discard()}

	root := &cobra.Command{
		Use:   "groceries",
		Short: "Command line client for the Groceries API",
		Long: "groceries manages a shared grocery list hosted by a Groceries API server.\n" +
			"On first use it asks for the API URL and your credentials, and keeps\n" +
			"them in .groceries.yml and .token in the working directory.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", config.DefaultConfigFile, "config file")
	flags.String("token-file", config.DefaultTokenFile, "session token file")
	flags.Duration("timeout", config.DefaultTimeout, "timeout for each API request")
	flags.String("log-level", logger.DefaultLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	flags.String("output", config.OutputText, "output format (text, json)")
	flags.Float64("rate-limit", 0, "maximum API requests per second (0 disables limiting)")
	flags.Int("rate-burst", config.DefaultRateBurst, "API request burst size")
	flags.String("pushgateway", "", "Prometheus pushgateway URL to push metrics to after each command")

	root.AddCommand(
		addCmd(a),
		buyCmd(a),
		listCmd(a),
		removeCmd(a),
		loginCmd(a),
		logoutCmd(a),
	)

	return root
}

// setup resolves settings, loads both stores and completes whatever part
// of the configuration the command needs.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.resolve(cmd); err != nil {
		return err
	}

	needs, ok := cmd.Annotations[setupAnnotation]
	if !ok || needs == setupNone {
		return nil
	}

	if moved, err := wizard.MigrateLegacyToken(a.cfg, a.creds); err != nil {
		a.logger.Warn("unable to migrate legacy token", "error", err)
	} else if moved {
		a.logger.Info("moved token from config file", "token_file", a.creds.Path())
	}

	steps := []wizard.Step{wizard.APIStep(a.cfg, a.prompter, a.newClient)}
	if needs == setupFull {
		steps = append(steps, wizard.TokenStep(a.cfg, a.creds, a.prompter, a.newClient))
	}

	w := wizard.New(cmd.OutOrStdout(), a.logger, steps...)
	if err := w.Run(cmd.Context()); err != nil {
		a.logger.Debug("setup did not complete", "state", w.State().String(), "error", err)
		metrics.CommandsTotal.WithLabelValues(cmd.Name(), "aborted").Inc()
		a.push(cmd.Context())
		if errors.Is(err, wizard.ErrAborted) || errors.Is(err, wizard.ErrInterrupted) {
			return abort(cmd, err)
		}
		return err
	}
	return nil
}

// resolve layers defaults, the config file, GROCERIES_* variables and flags
// into a.settings.
func (a *app) resolve(cmd *cobra.Command) error {
	v := a.v
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	a.logger = logger.NewWithWriter(cmd.ErrOrStderr(), v.GetString("log-level"), v.GetString("log-format"))
	path := v.GetString("config")
	if path == "" {
		path = config.DefaultConfigFile
	}
	a.cfg = config.Load(path, a.logger)
	if err := v.MergeConfigMap(a.cfg.Values()); err != nil {
		return fmt.Errorf("merging config file: %w", err)
	}

	a.settings = config.Settings{
		ConfigFile:  path,
		TokenFile:   v.GetString("token-file"),
		Timeout:     v.GetDuration("timeout"),
		LogLevel:    v.GetString("log-level"),
		LogFormat:   v.GetString("log-format"),
		Output:      v.GetString("output"),
		RateLimit:   v.GetFloat64("rate-limit"),
		RateBurst:   v.GetInt("rate-burst"),
		Pushgateway: v.GetString("pushgateway"),
	}
	a.settings.ApplyDefaults()
	if err := a.settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	a.logger = logger.NewWithWriter(cmd.ErrOrStderr(), a.settings.LogLevel, a.settings.LogFormat)
	a.creds = credential.NewStore(a.settings.TokenFile)
	a.httpClient = &http.Client{Timeout: a.settings.Timeout}
	a.prompter = prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	return nil
}

// newClient builds an API client for base carrying the stored token.
func (a *app) newClient(base string) *client.Client {
	return client.New(base,
		client.WithHTTPClient(a.httpClient),
		client.WithToken(a.creds.Read()),
		client.WithRateLimit(a.settings.RateLimit, a.settings.RateBurst),
		client.WithLogger(a.logger),
	)
}

func (a *app) repository() *groceries.Repository {
	base, _ := a.cfg.Get(config.KeyAPI)
	return groceries.NewRepository(a.newClient(base), a.logger)
}

// run wraps a command body with result counting and the metrics push.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.CommandsTotal.WithLabelValues(cmd.Name(), result).Inc()
		a.push(cmd.Context())
		return err
	}
}

func (a *app) push(ctx context.Context) {
	if a.settings.Pushgateway == "" {
		return
	}
	if err := metrics.Push(ctx, a.settings.Pushgateway); err != nil {
		a.logger.Warn("unable to push metrics", "url", a.settings.Pushgateway, "error", err)
	}
}

// abort reports an aborted or interrupted command.
func abort(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), "Aborted!")
	return fmt.Errorf("%w: %w", errReported, err)
}

// fail shows msg to the user and returns an error that Execute will not
// print again.
func fail(cmd *cobra.Command, msg string, err error) error {
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return fmt.Errorf("%w: %w", errReported, err)
}
