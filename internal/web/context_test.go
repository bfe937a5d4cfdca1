package web

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValueRoundTrip(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = AddValueToContext(r, "answer", 42)

	v, ok := GetValueFromContext[int](r, "answer")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = GetValueFromContext[string](r, "answer")
	assert.False(t, ok)

	_, ok = GetValueFromContext[int](r, "missing")
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, GetRequestID(r))
	assert.Equal(t, "abc", GetRequestID(SetRequestID(r, "abc")))
}
