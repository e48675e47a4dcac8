package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalSearchFlatResponse(t *testing.T) {
	server := newTestServer(t)

	status, body := postJSON(t, server, "/search", map[string]any{
		"keyword": "租赁", "province": "上海",
	})
	require.Equal(t, http.StatusOK, status)

	// This endpoint answers flat, not enveloped.
	assert.NotContains(t, body, "code")
	location := body["location"].(map[string]any)
	assert.Equal(t, "上海", location["province"])
	assert.Equal(t, "上海", location["city"])
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(5), body["page_size"])
}

func TestLegalSearchRequiresKeyword(t *testing.T) {
	server := newTestServer(t)

	status, body := postJSON(t, server, "/search", map[string]any{"keyword": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "keyword")
}

func TestLegalLocationDefaultsToNationwide(t *testing.T) {
	server := newTestServer(t)

	status, body := getJSON(t, server, "/location")
	require.Equal(t, http.StatusOK, status)
	location := body["location"].(map[string]any)
	assert.Equal(t, "全国", location["province"])
}

func TestLegalLocationFromNestedBody(t *testing.T) {
	server := newTestServer(t)

	status, body := postJSON(t, server, "/location", map[string]any{
		"location": map[string]string{"province": "北京", "city": "海淀"},
	})
	require.Equal(t, http.StatusOK, status)
	location := body["location"].(map[string]any)
	assert.Equal(t, "北京", location["province"])
	assert.Equal(t, "海淀", location["city"])
}

func TestLegalAdviceValidation(t *testing.T) {
	server := newTestServer(t)

	status, body := postJSON(t, server, "/api/legal", map[string]string{"question": " "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "question")
}

func TestLegalAdviceBackendDown(t *testing.T) {
	// The test server's advice client points at a closed port.
	server := newTestServer(t)

	status, body := postJSON(t, server, "/api/legal", map[string]string{"question": "租赁合同？"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "consultation backend is not reachable", body["error"])
}
