package legal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdviceClientAsk(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatResponse{
			Message: chatMessage{Role: "assistant", Content: "依据《民法典》第703条……"},
		})
	}))
	defer server.Close()

	client := NewAdviceClient(server.URL, "test-model", zerolog.Nop())
	answer, err := client.Ask("租赁合同的定义是什么？")
	require.NoError(t, err)
	assert.Equal(t, "依据《民法典》第703条……", answer)

	assert.Equal(t, "test-model", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "租赁合同的定义是什么？", got.Messages[1].Content)
}

func TestAdviceClientEmptyAnswerFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{})
	}))
	defer server.Close()

	client := NewAdviceClient(server.URL, "test-model", zerolog.Nop())
	answer, err := client.Ask("？")
	require.NoError(t, err)
	assert.Equal(t, fallbackAnswer, answer)
}

func TestAdviceClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewAdviceClient(server.URL, "test-model", zerolog.Nop())
	_, err := client.Ask("？")
	assert.ErrorIs(t, err, ErrAdviceUnreachable)
}

func TestAdviceClientBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewAdviceClient(server.URL, "test-model", zerolog.Nop())
	_, err := client.Ask("？")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAdviceUnreachable)
}
