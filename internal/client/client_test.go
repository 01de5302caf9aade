package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpad/internal/issue"
)

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/check", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "He go to school.", req.Text)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"issues": [{"errorId": "e1", "type": "grammar", "error": "go",
			"correct": "goes", "sentence": "He go to school."}]}`))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	issues, err := c.Check(context.Background(), "He go to school.")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "e1", issues[0].ID)
	assert.Equal(t, "goes", issues[0].CorrectionText)
}

func TestDetect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/detect", r.URL.Path)
		w.Write([]byte(`{"sentences": [
			{"sentence": "Looks generated.", "perplexity": 9.1, "highlight_sentence_for_ai": true}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	issues, err := c.Detect(context.Background(), "Looks generated.")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, issue.KindAI, issues[0].Kind)
}

func TestCheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)
	_, err := c.Check(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCheck_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server starts its background read; without
		// that, the request context is never cancelled on client disconnect
		// and Close deadlocks.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	c := New(server.URL, 5*time.Second)
	_, err := c.Check(ctx, "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize_Streams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/summarize", r.URL.Path)
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, chunk := range []string{"A short ", "summary ", "of the text."} {
			w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second)

	var got []string
	err := c.Summarize(context.Background(), "long draft", func(summary string) {
		got = append(got, summary)
	})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	// Each callback sees the accumulated summary so far; the last one is
	// the complete text.
	assert.Equal(t, "A short summary of the text.", got[len(got)-1])
	for i := 1; i < len(got); i++ {
		assert.True(t, len(got[i]) >= len(got[i-1]))
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/check", r.URL.Path)
		w.Write([]byte(`{"issues": []}`))
	}))
	defer server.Close()

	c := New(server.URL+"/", 0)
	issues, err := c.Check(context.Background(), "text")
	require.NoError(t, err)
	assert.Empty(t, issues)
}
