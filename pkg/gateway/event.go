package gateway

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

// LocalRequestID is the request identifier reported when no invocation
// context is available (local runs, unit tests).
const LocalRequestID = "local-test"

// ContextVariant identifies which historical gateway shape an event carries.
type ContextVariant int

const (
	// ContextNone means the event carries no request context at all.
	ContextNone ContextVariant = iota
	// ContextModern is the HTTP API (v2) shape with an "http" sub-object.
	ContextModern
	// ContextLegacy is the REST API (v1) shape with an "identity" sub-object.
	ContextLegacy
)

// Event represents an inbound API Gateway request for serverless functions.
// Both historical gateway shapes decode into it; absent sections stay nil.
type Event struct {
	RequestContext        *RequestContext   `json:"requestContext,omitempty"`
	Headers               map[string]string `json:"headers,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
}

// RequestContext carries the gateway metadata attached to an event.
type RequestContext struct {
	APIID     string           `json:"apiId,omitempty"`
	RequestID string           `json:"requestId,omitempty"`
	HTTP      *HTTPContext     `json:"http,omitempty"`
	Identity  *IdentityContext `json:"identity,omitempty"`
}

// HTTPContext is the modern (HTTP API v2) request description.
type HTTPContext struct {
	Method   string `json:"method,omitempty"`
	Path     string `json:"path,omitempty"`
	SourceIP string `json:"sourceIp,omitempty"`
}

// IdentityContext is the legacy (REST API v1) caller description.
type IdentityContext struct {
	SourceIP string `json:"sourceIp,omitempty"`
}

// ContextVariant reports which gateway shape the event carries. An event
// with both sub-objects counts as modern; real gateways never send both.
func (e *Event) ContextVariant() ContextVariant {
	if e == nil || e.RequestContext == nil {
		return ContextNone
	}
	if e.RequestContext.HTTP != nil {
		return ContextModern
	}
	if e.RequestContext.Identity != nil {
		return ContextLegacy
	}
	return ContextNone
}

// ClientIP extracts the client network address from the event, trying the
// modern gateway context, then the legacy one, then the first entry of an
// X-Forwarded-For header. Returns "" when no address can be found.
func (e *Event) ClientIP() string {
	if e == nil {
		return ""
	}
	if rc := e.RequestContext; rc != nil {
		if rc.HTTP != nil && rc.HTTP.SourceIP != "" {
			return rc.HTTP.SourceIP
		}
		if rc.Identity != nil && rc.Identity.SourceIP != "" {
			return rc.Identity.SourceIP
		}
	}
	if fwd := e.Header("x-forwarded-for"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	return ""
}

// Header returns a header value by case-insensitive name. The HTTP API
// lowercases header keys but the REST API preserves the caller's casing.
func (e *Event) Header(name string) string {
	if e == nil || e.Headers == nil {
		return ""
	}
	if v, ok := e.Headers[name]; ok {
		return v
	}
	for k, v := range e.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// RequestIDFromContext returns the AWS request ID for the current
// invocation, or LocalRequestID when the Lambda context is absent.
func RequestIDFromContext(ctx context.Context) string {
	if ctx != nil {
		if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
			return lc.AwsRequestID
		}
	}
	return LocalRequestID
}
