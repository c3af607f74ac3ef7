package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/smart-pos/controllers"
	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/kds"
	"github.com/yeremiapane/smart-pos/middlewares"
	"golang.org/x/time/rate"
)

// Terminal is what the handlers and the auth middlewares need from the
// running terminal.
type Terminal interface {
	controllers.Terminal
	middlewares.SessionSource
}

type Deps struct {
	Terminal     Terminal
	Hub          *kds.Hub
	Descriptions controllers.Describer
	Receipts     controllers.ReceiptRenderer
	CORSOrigin   string
	// RateLimit and RateBurst bound requests per client IP; zero disables
	// the global limiter.
	RateLimit rate.Limit
	RateBurst int
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())
	if deps.RateLimit > 0 {
		r.Use(middlewares.NewRateLimiter(deps.RateLimit, deps.RateBurst).RateLimit())
	}

	t := deps.Terminal
	userCtrl := controllers.NewUserController(t)
	productCtrl := controllers.NewProductController(t, deps.Descriptions)
	cartCtrl := controllers.NewCartController(t)
	orderCtrl := controllers.NewOrderController(t)
	adminCtrl := controllers.NewAdminController(t)
	receiptCtrl := controllers.NewReceiptController(t, deps.Receipts)
	kdsCtrl := controllers.NewKDSController(t, deps.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewLoginRateLimiter().RateLimit())
	{
		public.POST("/login", userCtrl.Login)
	}

	// WebSocket for the station screens; the token rides in the query string
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware(t))
	{
		ws.GET("", kdsCtrl.Connect)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(t))

	api.POST("/logout", userCtrl.Logout)
	api.GET("/profile", userCtrl.GetProfile)

	// USERS (admin)
	api.GET("/users", middlewares.RequireView(engine.ViewUsers), userCtrl.GetAllUsers)
	api.POST("/users", middlewares.RequireIntent(engine.KindCreateUser), userCtrl.CreateUser)
	api.DELETE("/users/:user_id", middlewares.RequireIntent(engine.KindDeleteUser), userCtrl.DeleteUser)

	// PRODUCTS
	catalog := middlewares.RequireView(engine.ViewSales, engine.ViewProducts)
	api.GET("/products", catalog, productCtrl.GetAllProducts)
	api.GET("/products/:product_id", catalog, productCtrl.GetProductByID)
	api.GET("/categories", catalog, productCtrl.GetCategories)
	api.GET("/products-template", middlewares.RequireView(engine.ViewProducts), productCtrl.GetTemplate)
	api.POST("/products", middlewares.RequireIntent(engine.KindCreateProduct), productCtrl.CreateProduct)
	api.PUT("/products/:product_id", middlewares.RequireIntent(engine.KindUpdateProduct), productCtrl.UpdateProduct)
	api.DELETE("/products/:product_id", middlewares.RequireIntent(engine.KindDeleteProduct), productCtrl.DeleteProduct)
	api.POST("/products/describe", middlewares.RequireView(engine.ViewProducts), productCtrl.GenerateDescription)

	// CART (cashier/admin)
	api.GET("/cart", middlewares.RequireView(engine.ViewSales), cartCtrl.GetCart)
	api.POST("/cart/items", middlewares.RequireIntent(engine.KindAddToCart), cartCtrl.AddItem)
	api.PATCH("/cart/items/:product_id", middlewares.RequireIntent(engine.KindSetQuantity), cartCtrl.SetQuantity)
	api.DELETE("/cart/items/:product_id", middlewares.RequireIntent(engine.KindRemoveFromCart), cartCtrl.RemoveItem)
	api.DELETE("/cart", middlewares.RequireIntent(engine.KindClearCart), cartCtrl.ClearCart)
	api.POST("/checkout", middlewares.RequireIntent(engine.KindCheckout), orderCtrl.Checkout)

	// ORDERS
	stations := middlewares.RequireView(engine.ViewSales, engine.ViewKitchen, engine.ViewServing)
	api.GET("/orders", middlewares.RequireView(engine.ViewSales), orderCtrl.GetAllOrders)
	api.GET("/orders/:order_id", stations, orderCtrl.GetOrderByID)
	api.PATCH("/orders/:order_id/status", middlewares.RequireIntent(engine.KindAdvanceOrderStatus), orderCtrl.UpdateStatus)
	api.GET("/kitchen/display", middlewares.RequireView(engine.ViewKitchen), orderCtrl.GetKitchenDisplay)
	api.GET("/serving/display", middlewares.RequireView(engine.ViewServing), orderCtrl.GetServingDisplay)

	receipts := api.Group("/orders/:order_id/receipt")
	receipts.Use(middlewares.RequireView(engine.ViewSales), middlewares.ReceiptLoggerMiddleware())
	{
		receipts.GET("", receiptCtrl.GetReceipt)
		receipts.GET("/pdf", receiptCtrl.GetReceiptPDF)
	}

	// ADMIN
	api.GET("/dashboard", middlewares.RequireView(engine.ViewDashboard), adminCtrl.GetDashboard)
	api.GET("/sales", middlewares.RequireView(engine.ViewDashboard), adminCtrl.GetSalesHistory)
	api.GET("/settings", middlewares.RequireView(engine.ViewSettings), adminCtrl.GetSettings)
	api.PUT("/settings", middlewares.RequireIntent(engine.KindReplaceSettings), adminCtrl.UpdateSettings)

	return r
}
