package main

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPRequest(t *testing.T) {
	rc := events.APIGatewayV2HTTPRequestContext{DomainName: "api.zelig.ma"}
	rc.HTTP.Method = http.MethodPost
	rc.HTTP.SourceIP = "203.0.113.9"

	event := events.APIGatewayV2HTTPRequest{
		RawPath:         "/api/admin/translations",
		RawQueryString:  "limit=5",
		Headers:         map[string]string{"content-type": "application/json", "authorization": "Bearer t"},
		Cookies:         []string{"a=1", "b=2"},
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"text":"Salam"}`)),
		IsBase64Encoded: true,
		RequestContext:  rc,
	}

	req, err := toHTTPRequest(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/admin/translations", req.URL.Path)
	assert.Equal(t, "5", req.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer t", req.Header.Get("Authorization"))
	assert.Equal(t, "a=1; b=2", req.Header.Get("Cookie"))
	assert.Equal(t, "203.0.113.9:0", req.RemoteAddr)
	assert.Equal(t, "api.zelig.ma", req.Host)

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"text":"Salam"}`, string(body))
}

func TestToHTTPRequest_BadBase64(t *testing.T) {
	_, err := toHTTPRequest(context.Background(), events.APIGatewayV2HTTPRequest{Body: "%%%", IsBase64Encoded: true})
	assert.Error(t, err)
}

func TestServe(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "s", Value: "1"})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":"online"}`))
	})

	resp, err := serve(context.Background(), h, events.APIGatewayV2HTTPRequest{RawPath: "/"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"status":"online"}`, resp.Body)
	assert.False(t, resp.IsBase64Encoded)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, []string{"s=1"}, resp.Cookies)
}

func TestResponseWriter_BinaryBodyIsBase64(t *testing.T) {
	w := newResponseWriter()
	_, _ = w.Write([]byte{0xff, 0xfe, 0x00})

	resp := w.toEvent()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00}), resp.Body)
}

func TestResponseWriter_EmptyResponseDefaultsTo200(t *testing.T) {
	resp := newResponseWriter().toEvent()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
}
