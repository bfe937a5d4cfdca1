package web

import "net/http"

const (
	RequestIDCtxKey  ContextKey = "request_id"
	RequestIDHeader             = "X-Request-Id"
)

func SetRequestID(r *http.Request, requestID string) *http.Request {
	return AddValueToContext(r, RequestIDCtxKey, requestID)
}

func GetRequestID(r *http.Request) string {
	requestID, _ := GetValueFromContext[string](r, RequestIDCtxKey)
	return requestID
}
