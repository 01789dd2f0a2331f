package testfixtures

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hostelmeals/internal/domain"
	"hostelmeals/internal/domain/models"
	"hostelmeals/internal/utils"
)

func (b *Backend) mount(r *gin.Engine) {
	// Arbitrary status responder for gateway interception tests.
	r.GET("/debug/status/:code", func(c *gin.Context) {
		code, _ := strconv.Atoi(c.Param("code"))
		if code == 0 {
			code = http.StatusInternalServerError
		}
		c.JSON(code, gin.H{"error": http.StatusText(code)})
	})

	r.GET("/meals/browse", b.browseMeals)
	r.GET("/meals/:id", b.getMeal)
	r.GET("/meals/:id/reviews", b.mealReviews)

	auth := r.Group("", b.requireAuth)
	{
		auth.GET("/users/role", b.roleLookup)
		auth.GET("/users/me", b.me)
		auth.PUT("/users", b.upsertAccount)
		auth.GET("/meals", b.listMeals)
		auth.POST("/meals/:id/like", b.likeMeal)
		auth.GET("/upcoming-meals", b.listUpcoming)
		auth.POST("/upcoming-meals/:id/like", b.likeUpcoming)
		auth.POST("/requests", b.createRequest)
		auth.GET("/requests/mine", b.myRequests)
		auth.DELETE("/requests/:id", b.cancelRequest)
		auth.POST("/reviews", b.createReview)
		auth.GET("/reviews/mine", b.myReviews)
		auth.PATCH("/reviews/:id", b.updateReview)
		auth.DELETE("/reviews/:id", b.deleteReview)
		auth.POST("/payments/intent", b.createIntent)
		auth.POST("/payments/confirm", b.confirmIntent)
		auth.GET("/payments/history", b.paymentHistory)
		auth.GET("/payments/:id", b.getPayment)
	}

	admin := r.Group("", b.requireAuth, b.requireAdmin)
	{
		admin.GET("/users", b.listUsers)
		admin.PATCH("/users/:id/admin", b.makeAdmin)
		admin.POST("/meals", b.createMeal)
		admin.PATCH("/meals/:id", b.updateMeal)
		admin.DELETE("/meals/:id", b.deleteMeal)
		admin.POST("/upcoming-meals", b.createUpcoming)
		admin.POST("/upcoming-meals/:id/publish", b.publishUpcoming)
		admin.GET("/requests", b.requestQueue)
		admin.PATCH("/requests/:id/serve", b.serveRequest)
		admin.GET("/reviews", b.listReviews)
	}
}

func (b *Backend) roleLookup(c *gin.Context) {
	email := utils.NormalizeEmail(c.Query("email"))
	b.mu.Lock()
	acct, ok := b.accountByEmail(email)
	b.mu.Unlock()
	role := domain.RoleUser
	if ok {
		role = acct.Role
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

func (b *Backend) me(c *gin.Context) {
	b.mu.Lock()
	acct, ok := b.accountByEmail(c.GetString("email"))
	b.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not registered"})
		return
	}
	c.JSON(http.StatusOK, acct)
}

func (b *Backend) upsertAccount(c *gin.Context) {
	var in models.AccountUpsert
	if err := c.ShouldBindJSON(&in); err != nil || in.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, a := range b.accounts {
		if a.Email == in.Email {
			// Idempotent: refresh profile fields only.
			b.accounts[i].Name = in.Name
			b.accounts[i].PhotoURL = in.PhotoURL
			c.JSON(http.StatusOK, b.accounts[i])
			return
		}
	}
	acct := models.Account{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		PhotoURL:  in.PhotoURL,
		Role:      domain.RoleUser,
		Badge:     domain.BadgeBronze,
		CreatedAt: time.Now().Format("2006-01-02 15:04"),
	}
	b.accounts = append(b.accounts, acct)
	c.JSON(http.StatusCreated, acct)
}

func (b *Backend) listUsers(c *gin.Context) {
	page, limit := pageParams(c)
	term := c.Query("search")
	b.mu.Lock()
	filtered := []models.Account{}
	for _, a := range b.accounts {
		if matches(term, a.Name, a.Email) {
			filtered = append(filtered, a)
		}
	}
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(filtered, page, limit))
}

func (b *Backend) makeAdmin(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, a := range b.accounts {
		if a.ID == id {
			b.accounts[i].Role = domain.RoleAdmin
			c.JSON(http.StatusOK, b.accounts[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
}

func (b *Backend) mealFilter(c *gin.Context) []models.Meal {
	term := c.Query("search")
	category := c.Query("category")
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []models.Meal{}
	for _, m := range b.meals {
		if !matches(term, m.Title, m.Category) {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		if minPrice > 0 && m.Price < minPrice {
			continue
		}
		if maxPrice > 0 && m.Price > maxPrice {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (b *Backend) listMeals(c *gin.Context) {
	page, limit := pageParams(c)
	c.JSON(http.StatusOK, paginate(b.mealFilter(c), page, limit))
}

func (b *Backend) browseMeals(c *gin.Context) {
	page, limit := pageParams(c)
	c.JSON(http.StatusOK, slicePage(b.mealFilter(c), page, limit))
}

func (b *Backend) getMeal(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range b.meals {
		if m.ID == id {
			c.JSON(http.StatusOK, m)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
}

func (b *Backend) createMeal(c *gin.Context) {
	var in models.MealInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	meal := models.Meal{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Image:       in.Image,
		Ingredients: in.Ingredients,
		Description: in.Description,
		Price:       in.Price,
		PostTime:    time.Now().Format("2006-01-02 15:04"),
	}
	b.mu.Lock()
	b.meals = append([]models.Meal{meal}, b.meals...)
	b.mu.Unlock()
	c.JSON(http.StatusCreated, meal)
}

func (b *Backend) updateMeal(c *gin.Context) {
	id := c.Param("id")
	var in models.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, m := range b.meals {
		if m.ID == id {
			if in.Title != "" {
				b.meals[i].Title = in.Title
			}
			if in.Category != "" {
				b.meals[i].Category = in.Category
			}
			if in.Price > 0 {
				b.meals[i].Price = in.Price
			}
			c.JSON(http.StatusOK, b.meals[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
}

func (b *Backend) deleteMeal(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, m := range b.meals {
		if m.ID == id {
			b.meals = append(b.meals[:i], b.meals[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"deleted": id})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
}

func (b *Backend) likeMeal(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, m := range b.meals {
		if m.ID == id {
			b.meals[i].Likes++
			c.JSON(http.StatusOK, gin.H{"likes": b.meals[i].Likes})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
}

func (b *Backend) listUpcoming(c *gin.Context) {
	page, limit := pageParams(c)
	b.mu.Lock()
	items := make([]models.UpcomingMeal, len(b.upcoming))
	copy(items, b.upcoming)
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(items, page, limit))
}

func (b *Backend) createUpcoming(c *gin.Context) {
	var in models.MealInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	up := models.UpcomingMeal{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Category: in.Category,
		Price:    in.Price,
		PostTime: time.Now().Format("2006-01-02 15:04"),
	}
	b.mu.Lock()
	b.upcoming = append(b.upcoming, up)
	b.mu.Unlock()
	c.JSON(http.StatusCreated, up)
}

func (b *Backend) likeUpcoming(c *gin.Context) {
	if !b.callerBadgeAllows(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "premium members only"})
		return
	}
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, u := range b.upcoming {
		if u.ID == id {
			b.upcoming[i].Likes++
			c.JSON(http.StatusOK, gin.H{"likes": b.upcoming[i].Likes})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "upcoming meal not found"})
}

func (b *Backend) publishUpcoming(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, u := range b.upcoming {
		if u.ID == id {
			b.meals = append([]models.Meal{{
				ID:          u.ID,
				Title:       u.Title,
				Category:    u.Category,
				Image:       u.Image,
				Ingredients: u.Ingredients,
				Description: u.Description,
				Price:       u.Price,
				PostTime:    time.Now().Format("2006-01-02 15:04"),
				Likes:       u.Likes,
			}}, b.meals...)
			b.upcoming = append(b.upcoming[:i], b.upcoming[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"published": id})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "upcoming meal not found"})
}

func (b *Backend) callerBadgeAllows(c *gin.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	acct, ok := b.accountByEmail(c.GetString("email"))
	return ok && acct.Badge.CanRequestMeals()
}

func (b *Backend) createRequest(c *gin.Context) {
	if !b.callerBadgeAllows(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "upgrade membership to request meals"})
		return
	}
	var in struct {
		MealID string `json:"meal_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.MealID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_id is required"})
		return
	}
	email := c.GetString("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	acct, _ := b.accountByEmail(email)
	title := ""
	for _, m := range b.meals {
		if m.ID == in.MealID {
			title = m.Title
		}
	}
	for _, u := range b.upcoming {
		if u.ID == in.MealID {
			title = u.Title
		}
	}
	if title == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
		return
	}
	req := models.MealRequest{
		ID:        uuid.NewString(),
		MealID:    in.MealID,
		MealTitle: title,
		UserName:  acct.Name,
		UserEmail: email,
		Status:    models.RequestPending,
		ReqTime:   time.Now().Format("2006-01-02 15:04"),
	}
	b.requests = append(b.requests, req)
	c.JSON(http.StatusCreated, req)
}

func (b *Backend) myRequests(c *gin.Context) {
	page, limit := pageParams(c)
	email := c.GetString("email")
	b.mu.Lock()
	mine := []models.MealRequest{}
	for _, r := range b.requests {
		if r.UserEmail == email {
			mine = append(mine, r)
		}
	}
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(mine, page, limit))
}

func (b *Backend) requestQueue(c *gin.Context) {
	page, limit := pageParams(c)
	term := c.Query("search")
	b.mu.Lock()
	filtered := []models.MealRequest{}
	for _, r := range b.requests {
		if matches(term, r.UserName, r.UserEmail) {
			filtered = append(filtered, r)
		}
	}
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(filtered, page, limit))
}

func (b *Backend) cancelRequest(c *gin.Context) {
	id := c.Param("id")
	email := c.GetString("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.requests {
		if r.ID == id {
			if r.UserEmail != email {
				c.JSON(http.StatusForbidden, gin.H{"error": "not your request"})
				return
			}
			b.requests = append(b.requests[:i], b.requests[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"cancelled": id})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
}

func (b *Backend) serveRequest(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.requests {
		if r.ID == id {
			b.requests[i].Status = models.RequestDelivered
			c.JSON(http.StatusOK, b.requests[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
}

func (b *Backend) mealReviews(c *gin.Context) {
	page, limit := pageParams(c)
	mealID := c.Param("id")
	b.mu.Lock()
	filtered := []models.Review{}
	for _, r := range b.reviews {
		if r.MealID == mealID {
			filtered = append(filtered, r)
		}
	}
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(filtered, page, limit))
}

func (b *Backend) createReview(c *gin.Context) {
	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil || in.MealID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	email := c.GetString("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	acct, _ := b.accountByEmail(email)
	rev := models.Review{
		ID:        uuid.NewString(),
		MealID:    in.MealID,
		UserName:  acct.Name,
		UserEmail: email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		PostedAt:  time.Now().Format("2006-01-02 15:04"),
	}
	for _, m := range b.meals {
		if m.ID == in.MealID {
			rev.MealTitle = m.Title
		}
	}
	b.reviews = append(b.reviews, rev)
	c.JSON(http.StatusCreated, rev)
}

func (b *Backend) myReviews(c *gin.Context) {
	page, limit := pageParams(c)
	email := c.GetString("email")
	b.mu.Lock()
	mine := []models.Review{}
	for _, r := range b.reviews {
		if r.UserEmail == email {
			mine = append(mine, r)
		}
	}
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(mine, page, limit))
}

func (b *Backend) listReviews(c *gin.Context) {
	page, limit := pageParams(c)
	b.mu.Lock()
	items := make([]models.Review, len(b.reviews))
	copy(items, b.reviews)
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(items, page, limit))
}

func (b *Backend) updateReview(c *gin.Context) {
	id := c.Param("id")
	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	email := c.GetString("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.reviews {
		if r.ID == id {
			if r.UserEmail != email {
				c.JSON(http.StatusForbidden, gin.H{"error": "not your review"})
				return
			}
			if in.Rating > 0 {
				b.reviews[i].Rating = in.Rating
			}
			if in.Comment != "" {
				b.reviews[i].Comment = in.Comment
			}
			c.JSON(http.StatusOK, b.reviews[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
}

func (b *Backend) deleteReview(c *gin.Context) {
	id := c.Param("id")
	email := c.GetString("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.reviews {
		if r.ID == id {
			if r.UserEmail != email {
				c.JSON(http.StatusForbidden, gin.H{"error": "not your review"})
				return
			}
			b.reviews = append(b.reviews[:i], b.reviews[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"deleted": id})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
}

func (b *Backend) createIntent(c *gin.Context) {
	var in struct {
		Badge string `json:"badge"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	badge, ok := domain.ParseBadge(in.Badge)
	if !ok || badge.Price() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "badge is not purchasable"})
		return
	}
	intent := models.PaymentIntent{
		ID:           uuid.NewString(),
		ClientSecret: uuid.NewString(),
		Badge:        badge,
		Amount:       badge.Price(),
	}
	b.mu.Lock()
	b.intents[intent.ID] = intent
	b.mu.Unlock()
	c.JSON(http.StatusCreated, intent)
}

func (b *Backend) confirmIntent(c *gin.Context) {
	var in struct {
		IntentID string `json:"intent_id"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.IntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intent_id is required"})
		return
	}
	email := c.GetString("email")
	b.mu.Lock()
	defer b.mu.Unlock()
	intent, ok := b.intents[in.IntentID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "intent not found"})
		return
	}
	delete(b.intents, in.IntentID)
	payment := models.Payment{
		ID:        uuid.NewString(),
		UserEmail: email,
		Badge:     intent.Badge,
		Amount:    intent.Amount,
		TxnID:     "txn_" + uuid.NewString()[:8],
		PaidAt:    time.Now().Format("2006-01-02 15:04"),
	}
	b.payments = append(b.payments, payment)
	for i, a := range b.accounts {
		if a.Email == email {
			b.accounts[i].Badge = intent.Badge
		}
	}
	c.JSON(http.StatusOK, payment)
}

func (b *Backend) paymentHistory(c *gin.Context) {
	page, limit := pageParams(c)
	email := c.GetString("email")
	b.mu.Lock()
	mine := []models.Payment{}
	for _, p := range b.payments {
		if p.UserEmail == email {
			mine = append(mine, p)
		}
	}
	b.mu.Unlock()
	c.JSON(http.StatusOK, paginate(mine, page, limit))
}

func (b *Backend) getPayment(c *gin.Context) {
	id := c.Param("id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, p := range b.payments {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
}
