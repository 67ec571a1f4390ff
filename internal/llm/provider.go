package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ModelStatus is the lifecycle state of the local model.
type ModelStatus string

const (
	StatusNotDownloaded ModelStatus = "not_downloaded"
	StatusDownloading   ModelStatus = "downloading"
	StatusLoading       ModelStatus = "loading"
	StatusReady         ModelStatus = "ready"
	StatusError         ModelStatus = "error"
	StatusUnsupported   ModelStatus = "unsupported"
)

// Capabilities reports whether the model can run here at all.
type Capabilities struct {
	CanRun bool   `json:"canRun"`
	Reason string `json:"reason,omitempty"`
}

// ModelProvider is the contract the insight engine needs from a model runtime.
type ModelProvider interface {
	CheckCapabilities(ctx context.Context) Capabilities
	Status() ModelStatus
	// Refresh re-reads the runtime state and returns the resulting status.
	Refresh(ctx context.Context) ModelStatus
	Initialize(ctx context.Context) error
	Download(ctx context.Context, onProgress func(Progress)) error
	CancelDownload()
	Progress() Progress
	Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
	Unload(ctx context.Context) error
	LastError() string
}

// OllamaProvider manages one model on an Ollama server. The model is a
// process-wide singleton: Initialize is idempotent and only one download
// runs at a time.
type OllamaProvider struct {
	cfg      LLMConfig
	client   LLMClient
	http     *http.Client
	progress *ProgressTracker

	mu       sync.Mutex
	status   ModelStatus
	loaded   bool
	lastErr  string
	cancelDL context.CancelFunc
}

// NewOllamaProvider builds a provider over client. A nil client is created
// from cfg with observer.
func NewOllamaProvider(cfg LLMConfig, client LLMClient, observer Observer) *OllamaProvider {
	if client == nil {
		client = NewOllamaClient(cfg, observer)
	}
	return &OllamaProvider{
		cfg:      cfg,
		client:   client,
		http:     newHTTPClient(),
		progress: NewProgressTracker(nil),
		status:   StatusNotDownloaded,
	}
}

type tagsResponse struct {
	Models []struct {
		Name  string `json:"name"`
		Model string `json:"model"`
	} `json:"models"`
}

type pullLine struct {
	Status    string `json:"status"`
	Digest    string `json:"digest"`
	Total     int64  `json:"total"`
	Completed int64  `json:"completed"`
	Error     string `json:"error"`
}

func (p *OllamaProvider) CheckCapabilities(ctx context.Context) Capabilities {
	if !ping(ctx, p.http, p.cfg.Endpoint) {
		return Capabilities{CanRun: false, Reason: "model server unreachable"}
	}
	return Capabilities{CanRun: true}
}

func (p *OllamaProvider) Status() ModelStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *OllamaProvider) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *OllamaProvider) Progress() Progress {
	return p.progress.Snapshot()
}

func (p *OllamaProvider) setStatus(s ModelStatus, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = s
	if err != nil {
		p.lastErr = err.Error()
	}
}

func (p *OllamaProvider) Refresh(ctx context.Context) ModelStatus {
	p.mu.Lock()
	busy := p.status == StatusDownloading || p.status == StatusLoading
	p.mu.Unlock()
	if busy {
		return p.Status()
	}

	if caps := p.CheckCapabilities(ctx); !caps.CanRun {
		p.setStatus(StatusUnsupported, fmt.Errorf("%w: %s", ErrUnsupported, caps.Reason))
		return StatusUnsupported
	}
	present, err := p.installed(ctx)
	if err != nil {
		p.setStatus(StatusError, err)
		return StatusError
	}
	if !present {
		p.mu.Lock()
		p.loaded = false
		p.mu.Unlock()
		p.setStatus(StatusNotDownloaded, nil)
		return StatusNotDownloaded
	}
	p.setStatus(StatusReady, nil)
	return StatusReady
}

func (p *OllamaProvider) installed(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Endpoint+"/api/tags", nil)
	if err != nil {
		return false, err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrOllamaUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("listing models: status %d", resp.StatusCode)
	}
	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, fmt.Errorf("decoding model list: %w", err)
	}
	for _, m := range tags.Models {
		if sameModel(m.Name, p.cfg.Model) || sameModel(m.Model, p.cfg.Model) {
			return true, nil
		}
	}
	return false, nil
}

func sameModel(listed, want string) bool {
	if listed == "" {
		return false
	}
	if !strings.Contains(want, ":") {
		want += ":latest"
	}
	if !strings.Contains(listed, ":") {
		listed += ":latest"
	}
	return listed == want
}

// Initialize loads the model into memory. A call while loading or after the
// model is loaded is a no-op.
func (p *OllamaProvider) Initialize(ctx context.Context) error {
	p.mu.Lock()
	if p.loaded || p.status == StatusLoading {
		p.mu.Unlock()
		return nil
	}
	if p.status == StatusDownloading {
		p.mu.Unlock()
		return ErrModelNotReady
	}
	p.status = StatusLoading
	p.mu.Unlock()

	_, err := p.client.Generate(ctx, GenerateRequest{Task: TaskWarmup})

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		if errors.Is(err, ErrModelNotReady) {
			p.status = StatusNotDownloaded
		} else {
			p.status = StatusError
		}
		p.lastErr = err.Error()
		return err
	}
	p.loaded = true
	p.status = StatusReady
	p.lastErr = ""
	return nil
}

// Download pulls the model, reporting each progress line to the tracker and
// to onProgress. On failure or cancellation the partial model is deleted.
func (p *OllamaProvider) Download(ctx context.Context, onProgress func(Progress)) error {
	p.mu.Lock()
	if p.status == StatusDownloading {
		p.mu.Unlock()
		return fmt.Errorf("%w: a download is already running", ErrDownloadFailed)
	}
	dlCtx, cancel := context.WithCancel(ctx)
	p.cancelDL = cancel
	p.status = StatusDownloading
	p.lastErr = ""
	p.mu.Unlock()
	defer cancel()

	p.progress.Reset()
	err := p.pull(dlCtx, onProgress)

	p.mu.Lock()
	p.cancelDL = nil
	p.mu.Unlock()

	if err != nil {
		cancelled := dlCtx.Err() != nil
		p.deletePartial()
		if cancelled {
			p.setStatus(StatusNotDownloaded, ErrDownloadCancelled)
			return ErrDownloadCancelled
		}
		wrapped := fmt.Errorf("%w: %v", ErrDownloadFailed, err)
		p.setStatus(StatusError, wrapped)
		return wrapped
	}

	p.progress.Finish("success")
	if onProgress != nil {
		onProgress(p.progress.Snapshot())
	}
	p.mu.Lock()
	p.loaded = false
	p.status = StatusNotDownloaded
	p.mu.Unlock()
	return p.Initialize(ctx)
}

func (p *OllamaProvider) pull(ctx context.Context, onProgress func(Progress)) error {
	body, err := json.Marshal(map[string]any{"model": p.cfg.Model, "stream": true})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint+"/api/pull", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pull returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var pl pullLine
		if err := json.Unmarshal([]byte(line), &pl); err != nil {
			return fmt.Errorf("decoding pull status: %w", err)
		}
		if pl.Error != "" {
			return errors.New(pl.Error)
		}
		p.progress.Update(pl.Status, pl.Digest, pl.Completed, pl.Total)
		if onProgress != nil {
			onProgress(p.progress.Snapshot())
		}
		if pl.Status == "success" {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.New("pull stream ended before success")
}

func (p *OllamaProvider) deletePartial() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = sendJSON(ctx, p.http, http.MethodDelete, p.cfg.Endpoint+"/api/delete", map[string]string{"model": p.cfg.Model}, nil)
}

// CancelDownload aborts a running download. It is a no-op otherwise.
func (p *OllamaProvider) CancelDownload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelDL != nil {
		p.cancelDL()
	}
}

// Generate narrates with the loaded model, loading it first if an earlier
// Unload released it.
func (p *OllamaProvider) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	p.mu.Lock()
	status, loaded := p.status, p.loaded
	p.mu.Unlock()
	if status != StatusReady {
		return "", fmt.Errorf("%w: status %s", ErrModelNotReady, status)
	}
	if !loaded {
		if err := p.Initialize(ctx); err != nil {
			return "", err
		}
	}

	req := GenerateRequest{Task: TaskNarrative, SystemPrompt: systemPrompt, UserPrompt: userPrompt}
	if maxTokens > 0 {
		req.MaxTokens = &maxTokens
	}
	resp, err := p.client.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, ErrModelNotReady) {
			p.mu.Lock()
			p.loaded = false
			p.mu.Unlock()
			p.setStatus(StatusNotDownloaded, err)
		} else {
			p.setStatus(StatusReady, err)
		}
		return "", err
	}
	return resp.Text, nil
}

// Unload asks the server to release the model from memory. The model stays
// installed, so the status remains ready and the next Generate reloads it.
func (p *OllamaProvider) Unload(ctx context.Context) error {
	p.mu.Lock()
	if !p.loaded {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err := postJSON(ctx, p.http, p.cfg.Endpoint+"/api/generate", ollamaRequest{Model: p.cfg.Model, KeepAlive: 0}, nil)
	if err != nil {
		return fmt.Errorf("unloading model: %w", err)
	}
	p.mu.Lock()
	p.loaded = false
	p.mu.Unlock()
	return nil
}
