package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendJsonResponse(t *testing.T) {
	recorder := httptest.NewRecorder()
	SendJsonResponse(recorder, map[string]int{"faults": 3})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"faults": 3}`, recorder.Body.String())
}

func TestSendJsonResponse_Unencodable(t *testing.T) {
	recorder := httptest.NewRecorder()
	SendJsonResponse(recorder, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
