package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anjiri1684/omnilearn/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClientGenerate(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Try "},{"text":"Advanced Go."}]}}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(srv.URL, "test-key", "")
	reply, err := client.Generate(context.Background(), ChatRequest{
		SystemInstruction: "be nice",
		Temperature:       0.7,
		History:           []ChatTurn{{Role: "user", Text: "hi"}, {Role: "model", Text: "hello"}},
		Message:           "which course for backend?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Try Advanced Go.", reply)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "be nice", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 3)
	assert.Equal(t, "model", captured.Contents[1].Role)
	assert.Equal(t, "which course for backend?", captured.Contents[2].Parts[0].Text)
	assert.Equal(t, 0.7, captured.GenerationConfig.Temperature)
}

func TestGeminiClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient(srv.URL, "k", "").Generate(context.Background(), ChatRequest{Message: "x"})
	assert.Error(t, err)

	_, err = NewGeminiClient(srv.URL, "", "").Generate(context.Background(), ChatRequest{Message: "x"})
	assert.Error(t, err)
}

type stubModel struct {
	reply string
	err   error
	last  ChatRequest
}

func (s *stubModel) Generate(_ context.Context, req ChatRequest) (string, error) {
	s.last = req
	return s.reply, s.err
}

func TestAdvisorUsesCatalog(t *testing.T) {
	model := &stubModel{reply: "Take c5"}
	advisor := NewAdvisor(model)
	courses := []models.Course{{ID: "c5", Title: "Advanced Go Programming", Category: "Development", Level: models.LevelAdvanced, Tags: []string{"Go"}, Price: 4999}}

	reply := advisor.Advise(context.Background(), courses, nil, "backend?")
	assert.Equal(t, "Take c5", reply)
	assert.Equal(t, 0.7, model.last.Temperature)
	assert.Contains(t, model.last.SystemInstruction, `"id":"c5"`)
	assert.Contains(t, model.last.SystemInstruction, `"price":4999`)
}

func TestAdvisorFallbacks(t *testing.T) {
	advisor := NewAdvisor(&stubModel{err: assert.AnError})

	assert.Equal(t, AdvisorFallbackReply, advisor.Advise(context.Background(), nil, nil, "hi"))
	assert.Equal(t, TutorFallbackReply, advisor.Tutor(context.Background(), models.Course{ID: "c1"}, nil, "hi"))
}

func TestTutorInstruction(t *testing.T) {
	model := &stubModel{reply: "ok"}
	NewAdvisor(model).Tutor(context.Background(), models.Course{ID: "c1", Title: "Go", AIContext: "Channels are covered in module 2."}, nil, "channels?")

	assert.Equal(t, 0.5, model.last.Temperature)
	assert.Contains(t, model.last.SystemInstruction, "Channels are covered in module 2.")

	assert.Contains(t, TutorInstruction(models.Course{Title: "Go"}), "No instructor notes were provided")
}
