package main

import (
	config "baul-moda/config/database"
	admin_handler "baul-moda/internal/adminHandler"
	checkout_handler "baul-moda/internal/checkoutHandler"
	"baul-moda/internal/exchange"
	admin_middleware "baul-moda/internal/middleware"
	payment_handler "baul-moda/internal/paymentHandler"
	storefront_handler "baul-moda/internal/storefrontHandler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// connect to db and make sure the schema exists
	config.InitDB()
	defer config.CloseDB()
	config.MigrateData()

	// shared rate cache and payment wiring
	exchange.Init()
	payment_handler.Init()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// public storefront routes
	e.GET("/products", storefront_handler.ListProducts)
	e.GET("/products/:id", storefront_handler.GetProduct)
	e.GET("/tips", storefront_handler.ListTips)
	e.GET("/courses", storefront_handler.ListCourses)
	e.GET("/projects", storefront_handler.ListProjects)
	e.GET("/api/exchange-rate", exchange.GetExchangeRate)

	// checkout
	e.POST("/checkout", checkout_handler.Checkout)
	e.POST("/checkout/delivery-check", checkout_handler.CheckDelivery)

	// payment provider callback
	e.POST("/api/mercadopago/webhook", payment_handler.MercadoPagoWebhook)

	// admin auth
	e.POST("/admin/register", admin_handler.RegisterAdmin)
	e.POST("/admin/login", admin_handler.LoginAdmin)

	// protected admin routes using JWT middleware
	adminGroup := e.Group("/admin")
	adminGroup.Use(admin_middleware.JWTMiddleware)

	adminGroup.GET("/products", admin_handler.ListProductsAdmin)
	adminGroup.POST("/products", admin_handler.CreateProduct)
	adminGroup.PUT("/products/:id", admin_handler.UpdateProduct)
	adminGroup.DELETE("/products/:id", admin_handler.DeleteProduct)

	adminGroup.POST("/tips", admin_handler.CreateTip)
	adminGroup.PUT("/tips/:id", admin_handler.UpdateTip)
	adminGroup.DELETE("/tips/:id", admin_handler.DeleteTip)

	adminGroup.POST("/courses", admin_handler.CreateCourse)
	adminGroup.PUT("/courses/:id", admin_handler.UpdateCourse)
	adminGroup.DELETE("/courses/:id", admin_handler.DeleteCourse)

	adminGroup.POST("/projects", admin_handler.CreateProject)
	adminGroup.PUT("/projects/:id", admin_handler.UpdateProject)
	adminGroup.DELETE("/projects/:id", admin_handler.DeleteProject)

	// start the server at 8080
	e.Logger.Fatal(e.Start(":8080"))
}
