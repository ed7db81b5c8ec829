package handlers

import (
	"context"
	"runtime/debug"

	"gateway-demo-api/pkg/gateway"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// IPInfoHandler validates that a request came through a recognized API
// Gateway shape and reports the caller's network address.
type IPInfoHandler struct {
	logger *logrus.Logger
}

// NewIPInfoHandler creates a new IP info handler
func NewIPInfoHandler(logger *logrus.Logger) *IPInfoHandler {
	return &IPInfoHandler{logger: logger}
}

// ipInfoResponse is the success body for the IP info endpoint
type ipInfoResponse struct {
	Message   string `json:"message"`
	ClientIP  string `json:"client_ip"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
}

// ValidateRequest checks that the event came through API Gateway.
// Returns (valid, error message).
func (h *IPInfoHandler) ValidateRequest(event *gateway.Event) (bool, string) {
	if event == nil || event.RequestContext == nil {
		return false, "Request not from API Gateway"
	}
	rc := event.RequestContext
	if rc.HTTP == nil && rc.APIID == "" {
		return false, "Invalid API Gateway request context"
	}
	return true, ""
}

// Handle processes a single invocation. Internal faults never propagate;
// they become the generic 500 response.
func (h *IPInfoHandler) Handle(ctx context.Context, event *gateway.Event) (resp events.APIGatewayProxyResponse, err error) {
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

	h.logger.Debug("Processing new request")

	if valid, message := h.ValidateRequest(event); !valid {
		h.logger.WithField("error", message).Warn("Invalid request")
		return failureResponse(403, message), nil
	}

	clientIP := event.ClientIP()
	if clientIP == "" {
		h.logger.Warn("Could not extract client IP")
		return failureResponse(400, "Could not determine client IP"), nil
	}

	body := ipInfoResponse{
		Message:   "Request processed successfully",
		ClientIP:  clientIP,
		Timestamp: utcTimestamp(),
		RequestID: gateway.RequestIDFromContext(ctx),
		Status:    StatusSuccess,
	}
	if event.ContextVariant() == gateway.ContextModern {
		body.Method = event.RequestContext.HTTP.Method
		body.Path = event.RequestContext.HTTP.Path
	}

	h.logger.WithField("client_ip", clientIP).Info("Successfully processed request")

	headers := map[string]string{"X-Custom-Header": "API Gateway Request"}
	return jsonResponse(200, headers, body), nil
}
