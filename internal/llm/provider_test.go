package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOllama serves the subset of the Ollama API the provider uses.
type fakeOllama struct {
	mu        sync.Mutex
	installed bool
	pullLines []pullLine
	blockPull bool
	deletes   atomic.Int32
	generates atomic.Int32
	keepAlive []any
	pulling   chan struct{}
}

func newFakeOllama(t *testing.T, f *fakeOllama) *httptest.Server {
	t.Helper()
	f.pulling = make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			f.mu.Lock()
			installed := f.installed
			f.mu.Unlock()
			models := []map[string]string{{"name": "other:7b"}}
			if installed {
				models = append(models, map[string]string{"name": "llama3.2:1b"})
			}
			json.NewEncoder(w).Encode(map[string]any{"models": models})
		case "/api/pull":
			flusher := w.(http.Flusher)
			for _, l := range f.pullLines {
				json.NewEncoder(w).Encode(l)
				flusher.Flush()
			}
			f.pulling <- struct{}{}
			if f.blockPull {
				<-r.Context().Done()
				return
			}
			f.mu.Lock()
			f.installed = true
			f.mu.Unlock()
			json.NewEncoder(w).Encode(pullLine{Status: "success"})
		case "/api/delete":
			assert.Equal(t, http.MethodDelete, r.Method)
			f.deletes.Add(1)
		case "/api/generate":
			f.generates.Add(1)
			var req ollamaRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.mu.Lock()
			f.keepAlive = append(f.keepAlive, req.KeepAlive)
			installed := f.installed
			f.mu.Unlock()
			if !installed {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"error":"model not found"}`)
				return
			}
			json.NewEncoder(w).Encode(ollamaResponse{Model: req.Model, Response: "narrated: " + req.Prompt})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(endpoint string) *OllamaProvider {
	cfg := testConfig(endpoint)
	cfg.MaxRetries = 0
	return NewOllamaProvider(cfg, nil, NoopObserver{})
}

func TestProvider_CheckCapabilities(t *testing.T) {
	srv := newFakeOllama(t, &fakeOllama{})
	assert.True(t, newTestProvider(srv.URL).CheckCapabilities(context.Background()).CanRun)

	caps := newTestProvider("http://127.0.0.1:1").CheckCapabilities(context.Background())
	assert.False(t, caps.CanRun)
	assert.Equal(t, "model server unreachable", caps.Reason)
}

func TestProvider_RefreshStatus(t *testing.T) {
	f := &fakeOllama{}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)

	assert.Equal(t, StatusNotDownloaded, p.Refresh(context.Background()))

	f.mu.Lock()
	f.installed = true
	f.mu.Unlock()
	assert.Equal(t, StatusReady, p.Refresh(context.Background()))

	unreachable := newTestProvider("http://127.0.0.1:1")
	assert.Equal(t, StatusUnsupported, unreachable.Refresh(context.Background()))
	assert.Contains(t, unreachable.LastError(), "unreachable")
}

func TestProvider_InitializeIsIdempotent(t *testing.T) {
	f := &fakeOllama{installed: true}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)

	require.NoError(t, p.Initialize(context.Background()))
	require.NoError(t, p.Initialize(context.Background()))

	assert.Equal(t, StatusReady, p.Status())
	assert.Equal(t, int32(1), f.generates.Load())
}

func TestProvider_DownloadReportsProgress(t *testing.T) {
	f := &fakeOllama{pullLines: []pullLine{
		{Status: "pulling manifest"},
		{Status: "pulling abc", Digest: "sha256:abc", Total: 1000, Completed: 400},
		{Status: "pulling abc", Digest: "sha256:abc", Total: 1000, Completed: 1000},
	}}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)

	var seen []Progress
	err := p.Download(context.Background(), func(pr Progress) { seen = append(seen, pr) })

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(seen), 4)
	assert.Equal(t, 40.0, seen[1].Percent)
	assert.True(t, seen[len(seen)-1].Done)
	assert.Equal(t, 100.0, p.Progress().Percent)
	assert.Equal(t, StatusReady, p.Status())
	assert.Zero(t, f.deletes.Load())
}

func TestProvider_DownloadFailureDeletesPartial(t *testing.T) {
	f := &fakeOllama{pullLines: []pullLine{
		{Status: "pulling abc", Digest: "sha256:abc", Total: 1000, Completed: 10},
		{Error: "disk full"},
	}}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)

	err := p.Download(context.Background(), nil)

	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int32(1), f.deletes.Load())
	assert.Equal(t, StatusError, p.Status())
}

func TestProvider_CancelDownload(t *testing.T) {
	f := &fakeOllama{
		blockPull: true,
		pullLines: []pullLine{{Status: "pulling abc", Digest: "sha256:abc", Total: 1000, Completed: 10}},
	}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)

	done := make(chan error, 1)
	go func() { done <- p.Download(context.Background(), nil) }()

	select {
	case <-f.pulling:
	case <-time.After(2 * time.Second):
		t.Fatal("pull never started")
	}
	assert.Equal(t, StatusDownloading, p.Status())
	p.CancelDownload()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrDownloadCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("download did not stop after cancel")
	}
	assert.Equal(t, int32(1), f.deletes.Load())
	assert.Equal(t, StatusNotDownloaded, p.Status())
}

func TestProvider_GenerateRequiresReady(t *testing.T) {
	f := &fakeOllama{}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)

	_, err := p.Generate(context.Background(), "sys", "user", 64)
	assert.ErrorIs(t, err, ErrModelNotReady)
	assert.Zero(t, f.generates.Load())
}

func TestProvider_GenerateAndUnload(t *testing.T) {
	f := &fakeOllama{installed: true}
	srv := newFakeOllama(t, f)
	p := newTestProvider(srv.URL)
	require.Equal(t, StatusReady, p.Refresh(context.Background()))

	text, err := p.Generate(context.Background(), "sys", "hello", 64)
	require.NoError(t, err)
	assert.Equal(t, "narrated: hello", text)

	require.NoError(t, p.Unload(context.Background()))
	assert.Equal(t, StatusReady, p.Status())

	f.mu.Lock()
	last := f.keepAlive[len(f.keepAlive)-1]
	f.mu.Unlock()
	assert.EqualValues(t, 0, last)

	// the next generate reloads first
	before := f.generates.Load()
	_, err = p.Generate(context.Background(), "sys", "again", 64)
	require.NoError(t, err)
	assert.Equal(t, before+2, f.generates.Load())
}

func TestSameModel(t *testing.T) {
	assert.True(t, sameModel("llama3.2:latest", "llama3.2"))
	assert.True(t, sameModel("llama3.2:1b", "llama3.2:1b"))
	assert.False(t, sameModel("llama3.2:3b", "llama3.2:1b"))
	assert.False(t, sameModel("", "llama3.2"))
}
