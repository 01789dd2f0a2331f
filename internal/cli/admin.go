package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/listctl"
	"hostelmeals/internal/utils"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin dashboard screens",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/manage-users"); err != nil {
			return err
		}
		ctrl := listctl.New(app.API.Users.List)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, u := range ctrl.Items() {
			rows = append(rows, []string{u.ID, u.Name, u.Email, string(u.Role), string(u.Badge)})
		}
		printTable([]string{"ID", "NAME", "EMAIL", "ROLE", "BADGE"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var adminPromoteCmd = &cobra.Command{
	Use:   "promote <user-id>",
	Short: "Promote an account to admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/manage-users"); err != nil {
			return err
		}
		if err := app.API.Users.MakeAdmin(cmd.Context(), args[0]); err != nil {
			printWarn("failed to promote, try again: " + err.Error())
			return nil
		}
		printOK("promoted " + args[0])
		return nil
	},
}

var adminMealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "The all-meals catalog table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/all-meals"); err != nil {
			return err
		}
		ctrl := listctl.New(app.API.Meals.List)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		renderMeals(ctrl.Items())
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var adminMealAddCmd = &cobra.Command{
	Use:   "meal-add <title> <category> <price>",
	Short: "Add a meal to the catalog",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/add-meal"); err != nil {
			return err
		}
		price, err := strconv.ParseFloat(args[2], 64)
		if err != nil || price <= 0 {
			printWarn("price must be a positive number")
			return nil
		}
		ingredients, _ := cmd.Flags().GetString("ingredients")
		description, _ := cmd.Flags().GetString("description")
		meal, err := app.API.Meals.Create(cmd.Context(), models.MealInput{
			Title:       args[0],
			Category:    args[1],
			Price:       price,
			Ingredients: utils.SplitIngredients(ingredients),
			Description: description,
		})
		if err != nil {
			return err
		}
		printOK("added " + meal.Title + " (" + meal.ID + ")")
		return nil
	},
}

var adminMealDeleteCmd = &cobra.Command{
	Use:   "meal-delete <meal-id>",
	Short: "Remove a meal from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/all-meals"); err != nil {
			return err
		}
		if err := app.API.Meals.Delete(cmd.Context(), args[0]); err != nil {
			printWarn("failed to delete, try again: " + err.Error())
			return nil
		}
		printOK("deleted " + args[0])
		return nil
	},
}

var adminServeCmd = &cobra.Command{
	Use:   "serve [request-id]",
	Short: "Show the serve queue, or serve one request",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/serve-meals"); err != nil {
			return err
		}
		if len(args) == 1 {
			if err := app.API.Requests.Serve(cmd.Context(), args[0]); err != nil {
				printWarn("failed to serve, try again: " + err.Error())
				return nil
			}
			printOK("served " + args[0])
			return nil
		}
		ctrl := listctl.New(app.API.Requests.Queue)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, r := range ctrl.Items() {
			rows = append(rows, []string{r.ID, r.MealTitle, r.UserName, r.UserEmail, r.Status})
		}
		printTable([]string{"ID", "MEAL", "NAME", "EMAIL", "STATUS"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var adminUpcomingCmd = &cobra.Command{
	Use:   "upcoming [publish <id>]",
	Short: "Review upcoming meals and publish them",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/upcoming-meals"); err != nil {
			return err
		}
		if len(args) == 2 && args[0] == "publish" {
			if err := app.API.Upcoming.Publish(cmd.Context(), args[1]); err != nil {
				printWarn("failed to publish, try again: " + err.Error())
				return nil
			}
			printOK("published " + args[1])
			return nil
		}
		ctrl := listctl.New(app.API.Upcoming.List)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, u := range ctrl.Items() {
			rows = append(rows, []string{u.ID, u.Title, u.Category, fmt.Sprintf("%d", u.Likes)})
		}
		printTable([]string{"ID", "TITLE", "CATEGORY", "LIKES"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

var adminReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "The all-reviews table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRoute(cmd.Context(), "/dashboard/admin/all-reviews"); err != nil {
			return err
		}
		ctrl := listctl.New(app.API.Reviews.All)
		if err := drive(cmd.Context(), ctrl, flagsFrom(cmd)); err != nil {
			return err
		}
		rows := [][]string{}
		for _, r := range ctrl.Items() {
			rows = append(rows, []string{r.ID, r.MealTitle, r.UserEmail, utils.FormatMoney(r.Rating)})
		}
		printTable([]string{"ID", "MEAL", "USER", "RATING"}, rows)
		printPageControl(ctrl.Page(), ctrl.TotalPages())
		return nil
	},
}

func init() {
	adminMealAddCmd.Flags().String("ingredients", "", "comma separated ingredients")
	adminMealAddCmd.Flags().String("description", "", "meal description")
	for _, c := range []*cobra.Command{adminUsersCmd, adminMealsCmd, adminServeCmd, adminUpcomingCmd, adminReviewsCmd} {
		addTableFlags(c)
	}
	adminCmd.AddCommand(adminUsersCmd, adminPromoteCmd, adminMealsCmd, adminMealAddCmd, adminMealDeleteCmd, adminServeCmd, adminUpcomingCmd, adminReviewsCmd)
}
