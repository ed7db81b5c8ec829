package handlers

import (
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// Body status values, kept consistent with the response class:
// 2xx carries "success", 4xx "failed", 5xx "error".
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"
)

// ErrorBody is the JSON body returned for rejected requests
type ErrorBody struct {
	Error     string `json:"error"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp,omitempty"`
}

func utcTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// jsonResponse serializes body into an API Gateway response. Marshal
// failures surface as the generic 500 so no half-built body escapes.
func jsonResponse(statusCode int, headers map[string]string, body interface{}) events.APIGatewayProxyResponse {
	payload, err := json.Marshal(body)
	if err != nil {
		return internalErrorResponse()
	}

	merged := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		merged[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    merged,
		Body:       string(payload),
	}
}

// failureResponse builds a 4xx rejection with a timestamped error body
func failureResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	return jsonResponse(statusCode, nil, ErrorBody{
		Error:     message,
		Status:    StatusFailed,
		Timestamp: utcTimestamp(),
	})
}

// internalErrorResponse is the single 500 shape. The message stays generic
// so internals never leak to the caller.
func internalErrorResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: 500,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"error":"Internal server error","status":"error"}`,
	}
}
