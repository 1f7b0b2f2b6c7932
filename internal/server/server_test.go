package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sant0-9/firpredict/internal/llm/llmtest"
	"github.com/sant0-9/firpredict/internal/predict"
	"github.com/sant0-9/firpredict/internal/sections"
	"github.com/sant0-9/firpredict/internal/session"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	// genai's opencensus dependency starts this worker from init
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

const reply = "Section 303: Theft\nSection 317: Receiving stolen property"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Message string          `json:"message"`
}

func newTestServer(fake *llmtest.Provider) (*Server, *session.History) {
	history := session.NewHistory()
	p := predict.New(fake, history, nil, predict.Options{Model: "test-model"})
	return New(p, nil, Options{}), history
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(&llmtest.Provider{})
	w, env := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"provider":"fake"`)
}

func TestPredictCreatesRecord(t *testing.T) {
	s, history := newTestServer(&llmtest.Provider{Reply: reply})

	w, env := do(t, s, http.MethodPost, "/api/predictions", `{"case":"My phone was snatched."}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var view PredictionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "My phone was snatched.", view.Record.Case)
	assert.Equal(t, reply, view.Record.Reply)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, sections.KindSection, view.Lines[1].Kind)
	require.Len(t, view.Display, 2)
	assert.True(t, view.Display[0].Emphasized)
	assert.Equal(t, "Section 303", view.Display[0].Label)

	assert.Equal(t, 1, history.Len())
}

func TestPredictEmptyInput(t *testing.T) {
	fake := &llmtest.Provider{Reply: reply}
	s, history := newTestServer(fake)

	w, env := do(t, s, http.MethodPost, "/api/predictions", `{"case":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeEmptyInput, env.Error.Code)
	assert.Zero(t, fake.Calls())
	assert.True(t, history.IsEmpty())
}

func TestPredictBadJSON(t *testing.T) {
	s, _ := newTestServer(&llmtest.Provider{Reply: reply})
	w, env := do(t, s, http.MethodPost, "/api/predictions", `{"case":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
}

func TestPredictUnavailable(t *testing.T) {
	s, history := newTestServer(&llmtest.Provider{Err: errors.New("quota exceeded")})

	w, env := do(t, s, http.MethodPost, "/api/predictions", `{"case":"a case"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, ErrCodeUnavailable, env.Error.Code)
	assert.NotContains(t, env.Error.Message, "quota")
	assert.True(t, history.IsEmpty())
}

func TestListGetAndClear(t *testing.T) {
	s, history := newTestServer(&llmtest.Provider{Reply: reply})
	history.Append(session.NewRecord("first", reply))
	second := session.NewRecord("second", "no sections found")
	history.Append(second)

	w, env := do(t, s, http.MethodGet, "/api/predictions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count       int              `json:"count"`
		Predictions []PredictionView `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "first", list.Predictions[0].Record.Case)
	assert.Equal(t, "second", list.Predictions[1].Record.Case)

	w, env = do(t, s, http.MethodGet, "/api/predictions/"+second.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var view PredictionView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, second.ID, view.Record.ID)
	require.Len(t, view.Display, 1)
	assert.False(t, view.Display[0].Emphasized)

	w, _ = do(t, s, http.MethodGet, "/api/predictions/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, s, http.MethodDelete, "/api/predictions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cleared":2}`, string(env.Data))
	assert.True(t, history.IsEmpty())
}

func TestExport(t *testing.T) {
	s, history := newTestServer(&llmtest.Provider{})
	rec := session.NewRecord("Bike stolen.", reply)
	history.Append(rec)

	t.Run("docx by default", func(t *testing.T) {
		w, _ := do(t, s, http.MethodGet, "/api/predictions/"+rec.ID+"/export", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="FIR_Predictions.docx"`, w.Header().Get("Content-Disposition"))

		zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
		require.NoError(t, err)
		names := make([]string, 0, len(zr.File))
		for _, f := range zr.File {
			names = append(names, f.Name)
		}
		assert.Contains(t, names, "word/document.xml")
	})

	t.Run("markdown", func(t *testing.T) {
		w, _ := do(t, s, http.MethodGet, "/api/predictions/"+rec.ID+"/export?format=md", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "FIR_Predictions.md")
		assert.Contains(t, w.Body.String(), "**Section 303:** Theft")
	})

	t.Run("unknown format", func(t *testing.T) {
		w, env := do(t, s, http.MethodGet, "/api/predictions/"+rec.ID+"/export?format=pdf", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
	})

	t.Run("unknown record", func(t *testing.T) {
		w, _ := do(t, s, http.MethodGet, "/api/predictions/nope/export", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNoRoute(t *testing.T) {
	s, _ := newTestServer(&llmtest.Provider{})
	w, env := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrCodeNotFound, env.Error.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _ := newTestServer(&llmtest.Provider{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
