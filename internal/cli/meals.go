package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/listctl"
	"hostelmeals/internal/utils"
)

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Browse and inspect the meal catalog",
}

// browse is the public infinite feed: pages accumulate until the server
// reports no continuation or the user stops asking for more.
var mealsBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Scroll the public meal feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		category, _ := cmd.Flags().GetString("category")
		minPrice, _ := cmd.Flags().GetString("min-price")
		maxPrice, _ := cmd.Flags().GetString("max-price")
		interactive, _ := cmd.Flags().GetBool("interactive")

		feed := listctl.NewFeed(app.API.Meals.Browse, func(m models.Meal) string { return m.ID }, app.Env.DefaultPageSize)
		ctx := cmd.Context()
		if search != "" {
			if err := feed.SetSearch(ctx, search); err != nil {
				return err
			}
		}
		for field, val := range map[string]string{"category": category, "min_price": minPrice, "max_price": maxPrice} {
			if val != "" {
				if err := feed.SetFilter(ctx, field, val); err != nil {
					return err
				}
			}
		}
		if len(feed.Items()) == 0 {
			if err := feed.FetchNext(ctx); err != nil {
				return err
			}
		}

		reader := bufio.NewReader(os.Stdin)
		for {
			renderMeals(feed.Items())
			if !feed.HasMore() {
				printOK("end of feed")
				return nil
			}
			if !interactive {
				return nil
			}
			fmt.Print("load more? [y/N] ")
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(line)) != "y" {
				return nil
			}
			if err := feed.FetchNext(ctx); err != nil {
				printWarn("could not load more: " + err.Error())
			}
		}
	},
}

var mealsShowCmd = &cobra.Command{
	Use:   "show <meal-id>",
	Short: "Show one meal with its reviews",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meal, err := app.API.Meals.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\nprice: %s  rating: %.1f  likes: %d\n%s\n",
			meal.Title, meal.Category, utils.FormatMoney(meal.Price), meal.Rating, meal.Likes, meal.Description)
		reviews, err := app.API.Reviews.ForMeal(cmd.Context(), meal.ID, listctl.Query{Page: 1, Size: 10})
		if err != nil {
			printWarn("reviews unavailable: " + err.Error())
			return nil
		}
		for _, r := range reviews.Items {
			fmt.Printf("  %.0f/5 %s - %s\n", r.Rating, r.UserName, utils.Ellipsis(r.Comment, 60))
		}
		return nil
	},
}

var mealsLikeCmd = &cobra.Command{
	Use:   "like <meal-id>",
	Short: "Like a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.API.Meals.Like(cmd.Context(), args[0]); err != nil {
			return err
		}
		printOK("liked")
		return nil
	},
}

func renderMeals(items []models.Meal) {
	rows := make([][]string, 0, len(items))
	for _, m := range items {
		rows = append(rows, []string{m.ID, m.Title, m.Category, utils.FormatMoney(m.Price), fmt.Sprintf("%d", m.Likes)})
	}
	printTable([]string{"ID", "TITLE", "CATEGORY", "PRICE", "LIKES"}, rows)
}

func init() {
	mealsBrowseCmd.Flags().String("search", "", "search term")
	mealsBrowseCmd.Flags().String("category", "", "breakfast, lunch or dinner")
	mealsBrowseCmd.Flags().String("min-price", "", "minimum price")
	mealsBrowseCmd.Flags().String("max-price", "", "maximum price")
	mealsBrowseCmd.Flags().Bool("interactive", true, "prompt to load more pages")
	mealsCmd.AddCommand(mealsBrowseCmd, mealsShowCmd, mealsLikeCmd)
}
