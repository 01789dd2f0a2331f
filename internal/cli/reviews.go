package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/listctl"
	"hostelmeals/internal/utils"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Manage your meal reviews",
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <meal-id> <rating> <comment>",
	Short: "Review a meal",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/my-reviews"); err != nil {
			return err
		}
		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil || rating < 1 || rating > 5 {
			printWarn("rating must be between 1 and 5")
			return nil
		}
		rev, err := app.API.Reviews.Create(cmd.Context(), models.ReviewInput{
			MealID:  args[0],
			Rating:  rating,
			Comment: args[2],
		})
		if err != nil {
			return err
		}
		printOK("review posted (" + rev.ID + ")")
		return nil
	},
}

var reviewsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show your reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/my-reviews"); err != nil {
			return err
		}
		ctrl := listctl.New(app.API.Reviews.Mine)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, r := range ctrl.Items() {
			rows = append(rows, []string{r.ID, r.MealTitle, utils.FormatMoney(r.Rating), utils.Ellipsis(r.Comment, 40)})
		}
		printTable([]string{"ID", "MEAL", "RATING", "COMMENT"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var reviewsDeleteCmd = &cobra.Command{
	Use:   "delete <review-id>",
	Short: "Delete one of your reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/my-reviews"); err != nil {
			return err
		}
		if err := app.API.Reviews.Delete(cmd.Context(), args[0]); err != nil {
			printWarn("failed to delete, try again: " + err.Error())
			return nil
		}
		printOK("deleted")
		return nil
	},
}

func init() {
	addTableFlags(reviewsListCmd)
	reviewsCmd.AddCommand(reviewsAddCmd, reviewsListCmd, reviewsDeleteCmd)
}
