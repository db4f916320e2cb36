package routes

import (
	"github.com/risewynn/qellum/app/controllers"
	"github.com/risewynn/qellum/pkg/middleware"
	"github.com/risewynn/qellum/pkg/rbac"
	"github.com/risewynn/qellum/pkg/router"
)

// RegisterAPI mounts the application's HTTP surface.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	planController := controllers.NewMealPlanController()
	purchaseController := controllers.NewPurchaseController()
	txController := controllers.NewTransactionController()
	adminController := controllers.NewAdminController()

	api := r.Group("/api")

	api.Post("/auth/login", "auth.login", authController.Login)
	api.Post("/auth/token", "auth.staff", authController.StaffLogin)
	api.Get("/packages", "packages.list", purchaseController.Packages)

	protected := api.Group("", middleware.Auth)
	protected.Get("/me", "me", authController.Me)
	protected.Post("/meal-plans", "meal-plans.create", planController.Create)
	protected.Post("/meal-plans/quote", "meal-plans.quote", planController.Quote)
	protected.Get("/meal-plans", "meal-plans.list", planController.List)
	protected.Get("/transactions", "transactions.list", txController.List)
	protected.Post("/purchase", "purchase", purchaseController.Purchase)

	admin := protected.Group("/admin", rbac.HasRole("admin", "chef"))
	admin.Get("/meal-plans", "admin.meal-plans", adminController.AllPlans)
	admin.Get("/requests", "admin.requests", adminController.PendingRequests)
	admin.Post("/requests/{id}/complete", "admin.requests.complete", adminController.CompleteRequest)
	admin.Post("/transactions", "admin.transactions.adjust", adminController.Adjust)
}
