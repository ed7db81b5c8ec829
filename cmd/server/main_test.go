package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gateway-demo-api/internal/config"
	"gateway-demo-api/internal/middleware"
	"gateway-demo-api/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{Environment: "development", LogLevel: "error"}
	container, err := server.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	container.Logger.SetLevel(logrus.ErrorLevel)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/ip", relay(container.IPInfo.Handle))
	router.GET("/greet", relay(container.Greeter.Handle))
	return router
}

func TestIPRouteReportsClientIP(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "198.51.100.3:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Custom-Header"); got != "API Gateway Request" {
		t.Errorf("X-Custom-Header = %q, want %q", got, "API Gateway Request")
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["client_ip"] != "198.51.100.3" {
		t.Errorf("client_ip = %v, want 198.51.100.3", body["client_ip"])
	}
	if body["method"] != "GET" || body["path"] != "/ip" {
		t.Errorf("method/path = %v/%v, want GET//ip", body["method"], body["path"])
	}
	if body["status"] != "success" {
		t.Errorf("status = %v, want success", body["status"])
	}
}

func TestGreetRouteRelaysStatusCode(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"underage", "/greet?name=Ada&age=17", http.StatusAccepted},
		{"adult", "/greet?name=Ada&age=30", http.StatusOK},
		{"no parameters", "/greet", http.StatusBadRequest},
		{"age out of range", "/greet?name=Ada&age=200", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d, body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestGreetRouteBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/greet?name=Ada&age=17", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Custom-Header"); got != "Lambda Demo" {
		t.Errorf("X-Custom-Header = %q, want %q", got, "Lambda Demo")
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if body["message"] != "Hello Ada!" {
		t.Errorf("message = %v, want %q", body["message"], "Hello Ada!")
	}
	if body["age_provided"] != "17" {
		t.Errorf("age_provided = %v, want 17", body["age_provided"])
	}
}
