package models

// Request statuses move pending → delivered when an admin serves the meal.
const (
	RequestPending   = "pending"
	RequestDelivered = "delivered"
)

// MealRequest is a student's ask for an upcoming or catalog meal.
type MealRequest struct {
	ID        string `json:"id"`
	MealID    string `json:"meal_id"`
	MealTitle string `json:"meal_title"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Status    string `json:"status"`
	ReqTime   string `json:"req_time"`
}
