package routes

import (
	"foodorder/controllers"
	"foodorder/entity"
	"foodorder/middlewares"
	"foodorder/services"

	"github.com/gin-gonic/gin"
)

// Deps is what the route table needs to build its controllers.
type Deps struct {
	JWTSecret  string
	Catalog    *services.CatalogService
	Carts      *services.CartService
	Orders     *services.OrderService
	Favourites *services.FavouriteService
}

// RegisterRoutes mounts the API on r. Paths under /orders share the :id
// segment; each handler reads it as a restaurant or an order id.
func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	restCtrl := controllers.NewRestaurantController(d.Catalog)
	cartCtrl := controllers.NewCartController(d.Carts)
	orderCtrl := controllers.NewOrderController(d.Orders)
	ownerOrderCtrl := controllers.NewOwnerOrderController(d.Orders)
	favCtrl := controllers.NewFavouriteController(d.Favourites)

	auth := middlewares.AuthMiddleware(d.JWTSecret)
	ownerAuth := middlewares.AuthMiddleware(d.JWTSecret, entity.RoleOwner)
	riderAuth := middlewares.AuthMiddleware(d.JWTSecret, entity.RoleRider)

	// Catalog (public)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)
	r.GET("/restaurants/:id/foods", restCtrl.Foods)

	// Catalog (owner)
	r.POST("/restaurants", ownerAuth, restCtrl.Create)
	ownRest := r.Group("/restaurants/:id", ownerAuth, middlewares.RestaurantOwner(d.Catalog, "id"))
	{
		ownRest.POST("/foods", restCtrl.CreateFood)
		ownRest.PATCH("/foods/:foodId", restCtrl.UpdateFood)
	}

	// Cart
	cart := r.Group("/cart", auth)
	{
		cart.GET("", cartCtrl.List)
		cart.GET("/:restaurantId", cartCtrl.Get)
		cart.POST("/:restaurantId", cartCtrl.Add)
		cart.PATCH("/:restaurantId", cartCtrl.Remove)
		cart.DELETE("/:restaurantId", cartCtrl.Delete)
	}

	// Orders (customer)
	orders := r.Group("/orders", auth)
	{
		orders.GET("", orderCtrl.ListForMe)
		orders.GET("/:id", orderCtrl.Detail)
		orders.POST("/:id/initiate", orderCtrl.Initiate)
		orders.POST("/:id/checkout", orderCtrl.Checkout)
		orders.PATCH("/:id/cancel", orderCtrl.Cancel)
		orders.PATCH("/:id/update", orderCtrl.UpdateInstructions)
		orders.POST("/:id/review", orderCtrl.Review)

		// favourites
		orders.POST("/:id", favCtrl.Add)
		orders.DELETE("/:id", favCtrl.Remove)
	}
	r.GET("/favourites", auth, favCtrl.List)

	// Orders (delivery partner)
	r.PATCH("/orders/:id/complete", riderAuth, orderCtrl.Complete)

	// Orders (restaurant owner)
	r.GET("/orders/restaurant/:restaurantId", ownerAuth,
		middlewares.RestaurantOwner(d.Catalog, "restaurantId"), ownerOrderCtrl.List)
	owner := r.Group("/orders/:id", ownerAuth, middlewares.RestaurantOwner(d.Catalog, "id"))
	{
		owner.PATCH("/update/:orderId", ownerOrderCtrl.UpdateStatus)
		owner.PATCH("/cancel/:orderId", ownerOrderCtrl.Cancel)
	}
}
