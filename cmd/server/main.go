package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gateway-demo-api/internal/config"
	"gateway-demo-api/internal/middleware"
	"gateway-demo-api/pkg/gateway"
	"gateway-demo-api/pkg/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
)

// invokeFunc is the shared shape of both serverless handlers
type invokeFunc func(ctx context.Context, event *gateway.Event) (events.APIGatewayProxyResponse, error)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize dependencies
	container, err := server.NewContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(container.Logger))
	router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"version":   "1.0.0",
		})
	})

	// Handler routes, served through the gateway-event adapter
	router.GET("/ip", relay(container.IPInfo.Handle))
	router.GET("/greet", relay(container.Greeter.Handle))

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// relay adapts an HTTP request into a gateway event, invokes the handler,
// and writes its response back verbatim
func relay(handle invokeFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := handle(c.Request.Context(), eventFromRequest(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "Internal server error",
				"status": "error",
			})
			return
		}

		contentType := "application/json"
		for k, v := range resp.Headers {
			if strings.EqualFold(k, "Content-Type") {
				contentType = v
				continue
			}
			c.Header(k, v)
		}

		c.Data(resp.StatusCode, contentType, []byte(resp.Body))
	}
}

// eventFromRequest builds a modern-context gateway event from the incoming
// HTTP request, the same shape the HTTP API gateway would deliver
func eventFromRequest(c *gin.Context) *gateway.Event {
	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if len(values) > 0 {
			headers[strings.ToLower(name)] = values[0]
		}
	}

	query := map[string]string{}
	for name, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[name] = values[0]
		}
	}

	return &gateway.Event{
		RequestContext: &gateway.RequestContext{
			APIID:     "local",
			RequestID: c.GetString(middleware.RequestIDKey),
			HTTP: &gateway.HTTPContext{
				Method:   c.Request.Method,
				Path:     c.Request.URL.Path,
				SourceIP: c.ClientIP(),
			},
		},
		Headers:               headers,
		QueryStringParameters: query,
	}
}
