package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestResponseText(t *testing.T) {
	text := func(parts ...genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		}}
	}

	cases := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{"joins text parts", text(genai.Text("Apply "), genai.Text("early. ")), "Apply early."},
		{"skips non-text parts", text(genai.Blob{MIMEType: "image/png", Data: []byte{1}}, genai.Text("Hi")), "Hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := responseText(tc.resp)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	empty := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil candidate", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{nil}}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"only blobs", text(genai.Blob{MIMEType: "image/png", Data: []byte{1}})},
		{"blank text", text(genai.Text("  \n"))},
	}
	for _, tc := range empty {
		t.Run(tc.name, func(t *testing.T) {
			_, err := responseText(tc.resp)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		})
	}
}

func TestNewGemini_MissingKey(t *testing.T) {
	_, err := NewGemini(context.Background(), " ", "gemini-2.0-flash")
	assert.Error(t, err)
}

func TestGemini_GenerateAgainstServer(t *testing.T) {
	var gotPath, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.Unmarshal(body, &req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Apply early."}]},"finishReason":"STOP"}]}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	g, err := NewGemini(ctx, "test-key", "test-model", option.WithEndpoint(srv.URL))
	require.NoError(t, err)
	defer g.Close()

	got, err := g.Generate(ctx, "How do I apply?")
	require.NoError(t, err)
	assert.Equal(t, "Apply early.", got)
	assert.True(t, strings.HasSuffix(gotPath, "models/test-model:generateContent"), gotPath)
	assert.Equal(t, "How do I apply?", gotPrompt)
}

func TestGemini_GenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"bad prompt","status":"INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	g, err := NewGemini(ctx, "test-key", "test-model", option.WithEndpoint(srv.URL))
	require.NoError(t, err)
	defer g.Close()

	_, err = g.Generate(ctx, "hi")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyResponse)
}
