package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/yigit/tcasystem/docs"
)

// OpenAPIPath serves the raw API description
const OpenAPIPath = "/openapi.yaml"

// SetupSwagger serves Swagger UI under /swagger pointed at the embedded description
func SetupSwagger(router *gin.Engine) {
	router.GET(OpenAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", docs.OpenAPI)
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL(OpenAPIPath),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
