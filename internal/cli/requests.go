package cli

import (
	"github.com/spf13/cobra"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/listctl"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "File and track your meal requests",
}

var requestsAddCmd = &cobra.Command{
	Use:   "add <meal-id>",
	Short: "Request a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/requested-meals"); err != nil {
			return err
		}
		// Pre-check the badge gate for a friendlier message; the backend
		// still enforces it.
		acct, err := app.API.Users.Me(cmd.Context())
		if err == nil && !acct.Badge.CanRequestMeals() {
			printWarn("meal requests need a silver membership or above (mealctl payments checkout)")
			return nil
		}
		req, err := app.API.Requests.Create(cmd.Context(), args[0])
		if err != nil {
			if domain.IsForbidden(err) {
				printWarn("your membership tier cannot request meals")
				return nil
			}
			return err
		}
		printOK("requested " + req.MealTitle + " (" + req.ID + ")")
		return nil
	},
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your requested meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/requested-meals"); err != nil {
			return err
		}
		ctrl := listctl.New(app.API.Requests.Mine)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, r := range ctrl.Items() {
			rows = append(rows, []string{r.ID, r.MealTitle, r.Status, r.ReqTime})
		}
		printTable([]string{"ID", "MEAL", "STATUS", "REQUESTED"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var requestsCancelCmd = &cobra.Command{
	Use:   "cancel <request-id>",
	Short: "Cancel a pending request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/requested-meals"); err != nil {
			return err
		}
		if err := app.API.Requests.Cancel(cmd.Context(), args[0]); err != nil {
			printWarn("failed to cancel, try again: " + err.Error())
			return nil
		}
		printOK("cancelled")
		return nil
	},
}

func flagsFrom(cmd *cobra.Command) pagedFlags {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	search, _ := cmd.Flags().GetString("search")
	return pagedFlags{page: page, size: size, search: search}
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "page number")
	cmd.Flags().Int("size", 0, "items per page (5, 10, 15, 20, 30, 50)")
	cmd.Flags().String("search", "", "search term")
}

func init() {
	addTableFlags(requestsListCmd)
	requestsCmd.AddCommand(requestsAddCmd, requestsListCmd, requestsCancelCmd)
}
