package handlers

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"gateway-demo-api/pkg/gateway"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const adultAge = 18

// GreeterHandler validates name/age query parameters and returns a
// greeting whose status code varies by age bracket.
type GreeterHandler struct {
	logger   *logrus.Logger
	validate *validator.Validate
}

// NewGreeterHandler creates a new greeter handler
func NewGreeterHandler(logger *logrus.Logger) *GreeterHandler {
	return &GreeterHandler{
		logger:   logger,
		validate: validator.New(),
	}
}

// greetParams carries the parsed query parameters through validation
type greetParams struct {
	Name string `validate:"required"`
	Age  *int   `validate:"omitempty,min=0,max=150"`
}

// greetingResponse is the success body for the greeter endpoint.
// AgeProvided echoes the caller's original age string, null when omitted.
type greetingResponse struct {
	Message     string  `json:"message"`
	AgeProvided *string `json:"age_provided"`
	ProcessedAt string  `json:"processed_at"`
	Status      string  `json:"status"`
}

// ValidateParams checks the incoming query parameters.
// Returns (valid, error message).
func (h *GreeterHandler) ValidateParams(params map[string]string) (bool, string) {
	if len(params) == 0 {
		return false, "No query parameters provided"
	}

	p := greetParams{Name: strings.TrimSpace(params["name"])}

	if ageStr := params["age"]; ageStr != "" {
		age, err := strconv.Atoi(ageStr)
		if err != nil {
			return false, "Age must be a valid number"
		}
		p.Age = &age
	}

	if err := h.validate.Struct(p); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "Name":
				return false, "Name parameter is required"
			case "Age":
				return false, "Age must be between 0 and 150"
			}
		}
		return false, "Invalid parameters"
	}

	return true, ""
}

// Handle processes a single invocation. Internal faults never propagate;
// they become the generic 500 response.
func (h *GreeterHandler) Handle(ctx context.Context, event *gateway.Event) (resp events.APIGatewayProxyResponse, err error) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			h.logger.WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Error processing request")
			resp = internalErrorResponse()
			err = nil
		}
	}()

	params := map[string]string{}
	if event != nil && event.QueryStringParameters != nil {
		params = event.QueryStringParameters
	}

	if valid, message := h.ValidateParams(params); !valid {
		h.logger.WithField("error", message).Warn("Validation failed")
		return jsonResponse(400, nil, ErrorBody{
			Error:  message,
			Status: StatusFailed,
		}), nil
	}

	name := params["name"]
	ageStr := params["age"]

	h.logger.WithFields(logrus.Fields{
		"name": name,
		"age":  ageStr,
	}).Info("Processing request")

	statusCode := 200
	if ageStr != "" {
		if age, convErr := strconv.Atoi(ageStr); convErr == nil && age < adultAge {
			h.logger.Info("Underage user detected")
			statusCode = 202
		}
	}

	body := greetingResponse{
		Message:     fmt.Sprintf("Hello %s!", name),
		ProcessedAt: utcTimestamp(),
		Status:      StatusSuccess,
	}
	if ageStr != "" {
		body.AgeProvided = &ageStr
	}

	h.logRequestMetrics(event, start)

	headers := map[string]string{"X-Custom-Header": "Lambda Demo"}
	return jsonResponse(statusCode, headers, body), nil
}

// logRequestMetrics emits one structured metrics entry per request.
// Every field is individually defaulted so a sparse event still logs.
func (h *GreeterHandler) logRequestMetrics(event *gateway.Event, start time.Time) {
	const missing = "N/A"

	requestID, method, path, sourceIP := missing, missing, missing, missing
	if event != nil && event.RequestContext != nil {
		if event.RequestContext.RequestID != "" {
			requestID = event.RequestContext.RequestID
		}
		if http := event.RequestContext.HTTP; http != nil {
			if http.Method != "" {
				method = http.Method
			}
			if http.Path != "" {
				path = http.Path
			}
			if http.SourceIP != "" {
				sourceIP = http.SourceIP
			}
		}
	}

	duration := float64(time.Since(start).Nanoseconds()) / 1e6

	h.logger.WithFields(logrus.Fields{
		"request_id":  requestID,
		"http_method": method,
		"path":        path,
		"duration_ms": fmt.Sprintf("%.2f", duration),
		"timestamp":   utcTimestamp(),
		"source_ip":   sourceIP,
	}).Info("Request metrics")
}
