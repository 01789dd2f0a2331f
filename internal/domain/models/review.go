package models

// Review is a rating plus comment a student leaves on a meal.
type Review struct {
	ID        string  `json:"id"`
	MealID    string  `json:"meal_id"`
	MealTitle string  `json:"meal_title"`
	UserName  string  `json:"user_name"`
	UserEmail string  `json:"user_email"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
	PostedAt  string  `json:"posted_at"`
}

// ReviewInput is the create/update payload.
type ReviewInput struct {
	MealID  string  `json:"meal_id"`
	Rating  float64 `json:"rating"`
	Comment string  `json:"comment"`
}
