package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ksscientifique/pkg/logger"
	"ksscientifique/pkg/metrics"
)

func SetupRoutes(categoryHandler *CategoryHandler, productHandler *ProductHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware("catalog-admin"))

	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "welcome")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog-admin",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := router.Group("/admin")

	categories := admin.Group("/categories")
	{
		categories.POST("/create-category", categoryHandler.CreateCategory)
		categories.GET("/get-categories", categoryHandler.GetCategories)
		categories.GET("/get-category/:id", categoryHandler.GetCategory)
		categories.PUT("/update-category/:id", categoryHandler.UpdateCategory)
		categories.DELETE("/delete-category/:id", categoryHandler.DeleteCategory)
	}

	products := admin.Group("/products")
	{
		products.POST("/create-product", productHandler.CreateProduct)
		products.GET("/get-products", productHandler.GetProducts)
		products.GET("/get-product/:id", productHandler.GetProduct)
		products.GET("/products-by-category/:category", productHandler.GetProductsByCategory)
		products.PUT("/update-product/:id", productHandler.UpdateProduct)
		// старый фронтенд обновляет товар без префикса update-product
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/delete-product/:id", productHandler.DeleteProduct)
	}

	return router
}
