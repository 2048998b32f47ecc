package routes

import (
	"time"

	"foodcart/checkout"
	"foodcart/configs"
	"foodcart/controllers"
	"foodcart/middlewares"
	"foodcart/pkg/events"
	"foodcart/pkg/lock"
	"foodcart/pkg/logging"
	"foodcart/pkg/metrics"
	"foodcart/repository"
	"foodcart/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is what the HTTP layer needs from main. Events, Lock and Metrics may
// be left nil.
type Deps struct {
	Cfg     *configs.Config
	DB      *gorm.DB
	Log     *zap.Logger
	Metrics *metrics.ServerMetrics
	Events  events.Publisher
	Lock    lock.SubmitLock
}

func RegisterRoutes(r *gin.Engine, d Deps) *services.SessionStore {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Lock == nil {
		d.Lock = lock.NewLocal(d.Cfg.SubmitTimeout + 10*time.Second)
	}

	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSOrigins))
	r.Use(logging.Middleware(d.Log))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	menuRepo := repository.NewMenuItemRepository(d.DB)
	addrRepo := repository.NewAddressRepository(d.DB)
	branchRepo := repository.NewBranchRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	favRepo := repository.NewFavoriteRepository(d.DB)

	// Services
	sessions := services.NewSessionStore(checkout.Promo{Code: d.Cfg.PromoCode, Percent: d.Cfg.PromoPercent})
	authSvc := services.NewAuthService(userRepo, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	orderSvc := services.NewOrderService(orderRepo, d.Cfg.AtomicOrders, d.Cfg.SubmitTimeout, d.Events, d.Metrics, d.Log.Named("orders"))
	cartSvc := services.NewCartService(sessions, menuRepo, addrRepo, branchRepo)
	checkoutSvc := services.NewCheckoutService(sessions, orderSvc, addrRepo, d.Lock, d.Log.Named("checkout"))

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, sessions)
	menuCtrl := controllers.NewMenuController(services.NewMenuService(menuRepo))
	branchCtrl := controllers.NewBranchController(services.NewBranchService(branchRepo))
	addrCtrl := controllers.NewAddressController(services.NewAddressService(addrRepo), cartSvc)
	favCtrl := controllers.NewFavoriteController(services.NewFavoriteService(favRepo, menuRepo))
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	// Public
	r.POST("/auth/login", authCtrl.Login)
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)
	r.GET("/categories", menuCtrl.Categories)
	r.GET("/branches", branchCtrl.List)
	r.GET("/delivery-zones", addrCtrl.Zones)

	// User
	u := r.Group("/", middlewares.AuthMiddleware(d.Cfg.JWTSecret))
	{
		u.GET("/profile", authCtrl.Me)
		u.DELETE("/session", authCtrl.EndSession)

		u.GET("/addresses", addrCtrl.List)
		u.POST("/addresses", addrCtrl.Create)
		u.PATCH("/addresses/:id", addrCtrl.Update)
		u.PUT("/addresses/:id/default", addrCtrl.SetDefault)
		u.DELETE("/addresses/:id", addrCtrl.Delete)

		u.GET("/favorites", favCtrl.List)
		u.POST("/favorites/:menuItemId", favCtrl.Add)
		u.DELETE("/favorites/:menuItemId", favCtrl.Remove)

		u.GET("/cart", cartCtrl.Get)
		u.DELETE("/cart", cartCtrl.Clear)
		u.POST("/cart/items", cartCtrl.Add)
		u.PATCH("/cart/items/:id", cartCtrl.UpdateQty)
		u.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		u.PUT("/cart/order-type", cartCtrl.SetOrderType)
		u.PUT("/cart/address", cartCtrl.SelectAddress)
		u.PUT("/cart/branch", cartCtrl.SelectBranch)

		u.GET("/checkout", checkoutCtrl.State)
		u.POST("/checkout/open", checkoutCtrl.Open)
		u.POST("/checkout/next", checkoutCtrl.Next)
		u.POST("/checkout/back", checkoutCtrl.Back)
		u.POST("/checkout/promo", checkoutCtrl.ApplyPromo)
		u.PUT("/checkout/notes", checkoutCtrl.SetNotes)
		u.POST("/checkout/cancel", checkoutCtrl.Cancel)
		u.POST("/checkout/submit", checkoutCtrl.Submit)

		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.GET("/orders/:id/pickup-qr", orderCtrl.PickupQR)
	}

	return sessions
}
