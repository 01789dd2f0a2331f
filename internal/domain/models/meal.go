package models

// Meal is a published catalog entry students can browse, like and review.
type Meal struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"` // breakfast, lunch, dinner
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Rating       float64  `json:"rating"`
	PostTime     string   `json:"post_time"`
	Distributor  string   `json:"distributor_name"`
	Likes        int      `json:"likes"`
	ReviewsCount int      `json:"reviews_count"`
}

// UpcomingMeal is a not-yet-published meal; premium users can like it and
// admins publish it into the catalog once it gathers enough likes.
type UpcomingMeal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	PostTime    string   `json:"post_time"`
	Distributor string   `json:"distributor_name"`
	Likes       int      `json:"likes"`
}

// MealInput is the create/update payload for admin catalog mutations.
type MealInput struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
}
