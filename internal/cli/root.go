// Package cli is mealctl, the terminal front-end. Each command plays the
// part of one dashboard screen: it runs the route guard for its path,
// drives a list controller or the browse feed, and refetches after every
// mutation instead of editing rows locally.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hostelmeals/internal/config"
	"hostelmeals/internal/guard"
)

var app *App

var rootCmd = &cobra.Command{
	Use:           "mealctl",
	Short:         "Hostel meal management client",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if app == nil {
			app = NewApp(config.LoadEnv())
		}
		app.Restore(cmd.Context())
	},
}

// ExecuteContext runs the command tree.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(mealsCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(paymentsCmd)
	rootCmd.AddCommand(adminCmd)
}

// requireRoute runs the guard for a dashboard path and converts anything
// but Allow into a command error, mirroring the SPA's redirects.
func requireRoute(ctx context.Context, path string) error {
	app.Nav.Go(path)
	d := app.Guard.Check(ctx, app.Routes, path)
	switch d.Verdict {
	case guard.VerdictAllow:
		return nil
	case guard.VerdictRedirectLogin:
		return fmt.Errorf("sign in first (mealctl login); you were headed to %s", d.From)
	case guard.VerdictRedirectForbidden:
		return fmt.Errorf("your account is not allowed to open %s", path)
	default:
		return fmt.Errorf("still loading, try again")
	}
}
