package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gearwear/internal/auth"
	"gearwear/internal/config"
	"gearwear/internal/store"
)

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Connect your Strava account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				if cErr := config.CreateExample(); cErr != nil {
					return fmt.Errorf("creating example config: %w", cErr)
				}
				path, _ := config.Path()
				fmt.Fprintf(cmd.OutOrStdout(),
					"Missing Strava credentials: %v\n\nAn example config was written to:\n  %s\n\nGet your client ID and secret from https://www.strava.com/settings/api\n",
					err, path)
				return nil
			}

			db, err := store.Open()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			oauthCfg := auth.NewOAuthConfig(auth.Config{
				ClientID:     cfg.Strava.ClientID,
				ClientSecret: cfg.Strava.ClientSecret,
				RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
			})

			result, err := auth.Authenticate(cmd.Context(), oauthCfg)
			if err != nil {
				return fmt.Errorf("authentication: %w", err)
			}

			err = db.SaveAuth(&store.Auth{
				AthleteID:    result.AthleteID,
				AthleteName:  result.AthleteName,
				AccessToken:  result.Token.AccessToken,
				RefreshToken: result.Token.RefreshToken,
				ExpiresAt:    result.Token.Expiry,
				Scope:        result.Scope,
			})
			if err != nil {
				return fmt.Errorf("storing tokens: %w", err)
			}

			if result.AthleteName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Connected as %s (athlete %d).\n", result.AthleteName, result.AthleteID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Connected (athlete %d).\n", result.AthleteID)
			}
			return nil
		},
	}
}
