package transport

import (
	"net/http"
	"os"

	"github.com/Ham3798/solana-voting-sample/address"
	"github.com/Ham3798/solana-voting-sample/logging"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	signerHeader     = "x-signer-key"
	signerContextKey = "signerKey"

	requestIDHeader   = "X-Request-ID"
	requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func NewRouter(ginMode string) *gin.Engine {
	gin.SetMode(ginMode)
	engine := gin.New()
	engine.Use(CORSMiddleware(), RequestIDMiddleware())

	//Bypass swagger for non-local
	if os.Getenv("APP_ENV") == "local" {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	engine.NoRoute(NoRouteHandler())

	return engine
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, x-admin-token, x-signer-key")

		if c.Request.Method == "OPTIONS" {
			logging.Log.Infof("OPTIONS request received:%s", c.Request.URL.Path)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware tags every response so a request can be traced through the logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := gonanoid.Generate(requestIDAlphabet, 12)
		if err != nil {
			logging.Log.Errorf("failed to generate request id: %v", err)
			c.Next()
			return
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Log.Infof("No routed request received for:%s", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
	}
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("x-admin-token")
		expected := os.Getenv("ADMIN_TOKEN")

		if token == "" || token != expected {
			logging.Log.Warnf("ADMIN: Unauthorized access attempt to %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// SignerAuthMiddleware requires a well formed signer key on every write request.
// The parsed identity is stored on the context for the controllers.
func SignerAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		signer, err := address.ParseIdentity(c.GetHeader(signerHeader))
		if err != nil {
			logging.Log.Warnf("SIGNER: rejected request to %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed x-signer-key header"})
			return
		}
		c.Set(signerContextKey, signer)
		c.Next()
	}
}

// SignerFromContext returns the identity stored by SignerAuthMiddleware,
// or the empty identity when the middleware did not run.
func SignerFromContext(c *gin.Context) address.Identity {
	value, ok := c.Get(signerContextKey)
	if !ok {
		return ""
	}
	signer, ok := value.(address.Identity)
	if !ok {
		return ""
	}
	return signer
}
