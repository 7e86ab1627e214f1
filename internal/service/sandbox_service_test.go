package service

import (
	"context"
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func judge0Stub(t *testing.T, accept func(req judge0Request) bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("wait"))
		assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))

		var req judge0Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var resp judge0Response
		if accept(req) {
			resp.Status.ID = judge0StatusAccepted
			resp.Status.Description = "Accepted"
		} else {
			resp.Status.ID = 4
			resp.Status.Description = "Wrong Answer"
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func specChallenge(cases ...TestCase) *model.Challenge {
	raw, _ := json.Marshal(TestSpec{Cases: cases})
	return &model.Challenge{Language: "go", Difficulty: model.DifficultyMedium, TestSpec: datatypes.JSON(raw)}
}

func TestSandboxRunScoresByCases(t *testing.T) {
	srv := judge0Stub(t, func(req judge0Request) bool {
		assert.Equal(t, 60, req.LanguageID)
		return strings.TrimSpace(req.Stdin) != "3"
	})
	defer srv.Close()

	sandbox := NewSandboxService(config.SandboxConfig{URL: srv.URL + "/", APIKey: "secret"})
	challenge := specChallenge(
		TestCase{Stdin: "1", Expected: "1"},
		TestCase{Stdin: "2", Expected: "4"},
		TestCase{Stdin: "3", Expected: "9"},
		TestCase{Stdin: "4", Expected: "16"},
	)

	got, err := sandbox.Run(context.Background(), Submission{Language: "golang", Content: goSolution, Challenge: challenge})
	require.NoError(t, err)
	assert.Equal(t, 75, got.Score)
	assert.False(t, got.Passed)
	assert.Contains(t, got.Feedback, "case 3: Wrong Answer")
}

func TestSandboxRunRequiresSpec(t *testing.T) {
	sandbox := NewSandboxService(config.SandboxConfig{URL: "http://127.0.0.1:0"})
	_, err := sandbox.Run(context.Background(), Submission{Language: "go", Content: goSolution})
	assert.ErrorIs(t, err, ErrNoTestSpec)

	_, err = sandbox.Run(context.Background(), Submission{Language: "go", Content: goSolution, Challenge: specChallenge()})
	assert.ErrorIs(t, err, ErrNoTestSpec)
}

func TestSandboxRunSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	sandbox := NewSandboxService(config.SandboxConfig{URL: srv.URL})
	_, err := sandbox.Run(context.Background(), Submission{
		Language:  "python",
		Content:   pythonSolution,
		Challenge: specChallenge(TestCase{Stdin: "", Expected: "3"}),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
