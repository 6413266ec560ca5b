package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	path    string
	headers http.Header
	body    map[string]interface{}
}

func completionServer(t *testing.T, status int, payload string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.headers = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

const oneChoice = `{"id":"x","object":"chat.completion","model":"gpt-4o-mini",
"choices":[{"index":0,"message":{"role":"assistant","content":"The fog rolled in."},"finish_reason":"stop"}],
"usage":{"prompt_tokens":12,"completion_tokens":5,"total_tokens":17}}`

func TestOpenAIClient_Generate(t *testing.T) {
	srv, captured := completionServer(t, http.StatusOK, oneChoice)
	c := NewOpenAI("key", srv.URL+"/v1", "gpt-4o-mini", "", "")

	resp, err := c.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: RoleSystem, Content: "You are a creative writer. Write in a Horror style."},
			{Role: RoleUser, Content: "fog"},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, "The fog rolled in.", resp.Content)
	assert.Equal(t, 17, resp.TotalTokens)
	assert.Equal(t, "/v1/chat/completions", captured.path)
	assert.Equal(t, "Bearer key", captured.headers.Get("Authorization"))
	assert.Equal(t, "gpt-4o-mini", captured.body["model"])
	assert.EqualValues(t, 300, captured.body["max_tokens"])
	assert.InDelta(t, 0.7, captured.body["temperature"], 0.001)

	msgs, ok := captured.body["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]interface{})["role"])
	assert.Equal(t, "fog", msgs[1].(map[string]interface{})["content"])
}

func TestOpenAIClient_Generate_AttributionHeaders(t *testing.T) {
	srv, captured := completionServer(t, http.StatusOK, oneChoice)
	c := NewOpenAI("key", srv.URL, "m", "https://blueghost.example", "BlueGhost")

	_, err := c.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)

	assert.Equal(t, "https://blueghost.example", captured.headers.Get("HTTP-Referer"))
	assert.Equal(t, "BlueGhost", captured.headers.Get("X-Title"))
}

func TestOpenAIClient_Generate_NoChoices(t *testing.T) {
	srv, _ := completionServer(t, http.StatusOK, `{"id":"x","choices":[]}`)
	c := NewOpenAI("key", srv.URL, "m", "", "")

	_, err := c.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestOpenAIClient_Generate_ServerError(t *testing.T) {
	srv, _ := completionServer(t, http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`)
	c := NewOpenAI("key", srv.URL, "m", "", "")

	_, err := c.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create chat completion")
}
