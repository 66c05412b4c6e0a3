package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitHostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)
	return parsed.Hostname(), port
}

func TestDoRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "/simulacion/resultados", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write(append([]byte("eco:"), body...))
	}))
	defer server.Close()

	ip, port := splitHostPort(t, server.URL)
	response, err := DoRequest(port, ip, "POST", "simulacion/resultados", []byte("hola"))
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, "eco:hola", string(body))
}

func TestDoRequest_StatusError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ip, port := splitHostPort(t, server.URL)
	response, err := DoRequest(port, ip, "GET", "nada")
	require.Error(t, err)
	require.NotNil(t, response)
	response.Body.Close()
	assert.Equal(t, http.StatusNotFound, response.StatusCode)
}
