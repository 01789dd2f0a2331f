package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/nav"
	"hostelmeals/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := app.Session.SignIn(cmd.Context(), args[0], args[1])
		if err != nil {
			if domain.IsAuth(err) {
				printWarn(err.Error())
				return nil
			}
			return err
		}
		writeStateToken(sess.RefreshToken)
		// Send the user back where an interrupted command wanted to go.
		app.Nav.Go(app.Nav.ConsumeReturn())
		printOK("signed in as " + sess.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email> <password> <display-name>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		photoURL, _ := cmd.Flags().GetString("photo")
		sess, err := app.Session.SignUp(cmd.Context(), args[0], args[1], args[2], photoURL)
		if err != nil {
			if domain.IsAuth(err) || domain.IsValidation(err) {
				printWarn(err.Error())
				return nil
			}
			return err
		}
		writeStateToken(sess.RefreshToken)
		printOK("registered " + sess.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out locally and revoke the remote session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Session.SignOut(cmd.Context())
		clearStateToken()
		app.Nav.Go(nav.PathHome)
		printOK("signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account, role and badge",
	RunE: func(cmd *cobra.Command, args []string) error {
		cur := app.Session.Current()
		if cur.State != session.StateAuthenticated {
			printWarn("not signed in")
			return nil
		}
		acct, err := app.API.Users.Me(cmd.Context())
		if err != nil {
			return err
		}
		role, err := app.Roles.Resolve(cmd.Context())
		if err != nil {
			role = acct.Role
		}
		fmt.Printf("%s <%s>\nrole: %s\nbadge: %s\n", acct.Name, acct.Email, role, acct.Badge)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("photo", "", "profile photo URL")
}
