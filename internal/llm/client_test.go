package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wodwise/wodwise/internal/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	reply := map[string]interface{}{
		"id": "chatcmpl-test",
		"choices": []map[string]interface{}{
			{
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(reply))
}

func TestClient_SimpleChat(t *testing.T) {
	var gotAuth string
	var gotModel string
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var chatReq struct {
			Model    string        `json:"model"`
			Messages []llm.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&chatReq))
		gotModel = chatReq.Model
		require.Len(t, chatReq.Messages, 2)
		assert.Equal(t, "system", chatReq.Messages[0].Role)
		assert.Equal(t, "user", chatReq.Messages[1].Role)
		chatReply(t, w, "hello back")
	}))
	defer testServer.Close()

	client := llm.NewClient(llm.NewClientParams{
		BaseURL:    testServer.URL,
		APIKey:     "dummy-api-key",
		Model:      "test-model",
		HTTPClient: testServer.Client(),
	})

	reply, err := client.SimpleChat(context.Background(), "be brief", "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello back", reply)
	assert.Equal(t, "Bearer dummy-api-key", gotAuth)
	assert.Equal(t, "test-model", gotModel)
}

func TestClient_Chat_FallbackModel(t *testing.T) {
	var modelsTried []string
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var chatReq struct {
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&chatReq))
		modelsTried = append(modelsTried, chatReq.Model)

		if chatReq.Model == "primary" {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "model overloaded", "type": "overloaded"},
			}))
			return
		}
		chatReply(t, w, "from fallback")
	}))
	defer testServer.Close()

	client := llm.NewClient(llm.NewClientParams{
		BaseURL:       testServer.URL,
		Model:         "primary",
		FallbackModel: "secondary",
		HTTPClient:    testServer.Client(),
	})

	reply, err := client.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, "from fallback", reply)
	assert.Equal(t, []string{"primary", "secondary"}, modelsTried)
}

func TestClient_Chat_AllModelsFail(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "nope", "type": "unavailable"},
		}))
	}))
	defer testServer.Close()

	client := llm.NewClient(llm.NewClientParams{
		BaseURL:    testServer.URL,
		HTTPClient: testServer.Client(),
	})

	_, err := client.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestClient_Chat_NoChoices(t *testing.T) {
	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}}))
	}))
	defer testServer.Close()

	client := llm.NewClient(llm.NewClientParams{
		BaseURL:    testServer.URL,
		HTTPClient: testServer.Client(),
	})

	_, err := client.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
