package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSendError(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	w := httptest.NewRecorder()
	sendError(w, log, http.StatusConflict, errors.New("game is over"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"game is over"}`, w.Body.String())
}

func TestSendJSON(t *testing.T) {
	w := httptest.NewRecorder()
	_, err := SendJSON(w, map[string]int{"n": 5})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":5}`, w.Body.String())
}
