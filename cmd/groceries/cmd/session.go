package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/groceries/internal/auth"
	"github.com/donaldgifford/groceries/internal/config"
	"github.com/donaldgifford/groceries/internal/prompt"
	"github.com/donaldgifford/groceries/internal/wizard"
)

func loginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store a new session token",
		Long: "Ask for a username and password, exchange them for a session token\n" +
			"and replace the stored token with it.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{setupAnnotation: setupAPI},
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			answers, err := wizard.Credentials(ctx, a.prompter)
			if err != nil {
				if errors.Is(err, prompt.ErrInterrupted) {
					return abort(cmd, err)
				}
				return err
			}

			base, _ := a.cfg.Get(config.KeyAPI)
			token, err := auth.New(a.newClient(base)).Login(ctx, answers["username"], answers["password"])
			if err != nil {
				a.logger.Debug("login failed", "error", err)
				return fail(cmd, wizard.ErrMessageLogin, err)
			}
			return a.creds.Write(token)
		}),
	}
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Forget the stored session token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{setupAnnotation: setupNone},
		RunE: a.run(func(_ *cobra.Command, _ []string) error {
			if a.cfg.Has(config.KeyToken) {
				a.cfg.Delete(config.KeyToken)
				if err := a.cfg.Write(); err != nil {
					return err
				}
			}
			return a.creds.Delete()
		}),
	}
}
