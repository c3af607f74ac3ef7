package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionService(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		var body geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Contents) > 0 {
			gotPrompt = body.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  หอมกรุ่น "},{"text":"ชวนดื่ม"}]}}]}`))
	}))
	defer srv.Close()

	svc := NewDescriptionService("test-key", srv.URL+"/", "")
	defer svc.client.CloseIdleConnections()
	text := svc.Describe(context.Background(), "มอคค่า", "เครื่องดื่ม")

	assert.Equal(t, "หอมกรุ่น ชวนดื่ม", text)
	assert.Equal(t, "/models/gemini-2.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotPrompt, `"มอคค่า"`)
	assert.Contains(t, gotPrompt, `"เครื่องดื่ม"`)
}

func TestDescriptionServiceFailures(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		status  int
		payload string
	}{
		{name: "missing api key", apiKey: "", status: http.StatusOK, payload: `{}`},
		{name: "api error", apiKey: "k", status: http.StatusTooManyRequests, payload: `{"error":"quota"}`},
		{name: "no candidates", apiKey: "k", status: http.StatusOK, payload: `{"candidates":[]}`},
		{name: "malformed body", apiKey: "k", status: http.StatusOK, payload: `not json`},
		{name: "blank text", apiKey: "k", status: http.StatusOK, payload: `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			svc := NewDescriptionService(tt.apiKey, srv.URL, "gemini-test")
			defer svc.client.CloseIdleConnections()
			_, err := svc.Generate(context.Background(), "x", "y")
			require.Error(t, err)
			assert.Equal(t, DescriptionFailed, svc.Describe(context.Background(), "x", "y"))
		})
	}
}

func TestDescriptionPrompt(t *testing.T) {
	p := DescriptionPrompt("บราวนี่", "เบเกอรี่")
	assert.True(t, strings.HasPrefix(p, "ช่วยเขียนคำอธิบายสินค้า"))
	assert.Contains(t, p, "2-3 ประโยค")
}
