package model

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/rdtech2020/pratik-grammars/internal/chunker"
)

// Adapter state, set exactly once by the load probe.
const (
	stateUnloaded int32 = iota
	stateReady
	stateDegraded
)

// Adapter owns the lifetime of one Generator. The backend is resolved
// lazily on first use and held for the process lifetime; a failed probe
// degrades the adapter to a permanent no-op where Generate returns its
// input unchanged. Inference failures are caught per call and likewise
// yield the unchanged input. No error ever escapes Generate.
//
// A single Adapter instance is safe for concurrent use.
type Adapter struct {
	gen      Generator
	cfg      GenerationConfig
	log      *zap.Logger
	loadOnce sync.Once
	state    atomic.Int32
}

// Info describes the adapter for health and diagnostics endpoints.
type Info struct {
	Backend   string `json:"backend"`
	Model     string `json:"model"`
	Loaded    bool   `json:"model_loaded"`
	MaxLength int    `json:"max_length"`
	DoSample  bool   `json:"do_sample"`
}

// NewAdapter wraps gen with the given decoding configuration. log may be nil.
func NewAdapter(gen Generator, cfg GenerationConfig, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{gen: gen, cfg: cfg, log: log}
}

// load probes the backend exactly once. There is no retry: a failed load
// stays failed until process restart.
func (a *Adapter) load(ctx context.Context) {
	a.loadOnce.Do(func() {
		if err := a.gen.IsAvailable(ctx); err != nil {
			a.state.Store(stateDegraded)
			a.log.Warn("model backend unavailable, corrections degrade to rule cascade only",
				zap.String("backend", a.gen.Name()),
				zap.String("model", a.cfg.Model),
				zap.Error(err))
			return
		}
		a.state.Store(stateReady)
		a.log.Info("model backend ready",
			zap.String("backend", a.gen.Name()),
			zap.String("model", a.cfg.Model))
	})
}

// Healthy reports whether the backend loaded successfully, probing it first
// if that has not happened yet.
func (a *Adapter) Healthy(ctx context.Context) bool {
	a.load(ctx)
	return a.state.Load() == stateReady
}

// Generate returns the model's correction of text, or text unchanged when
// the adapter is degraded or inference fails. Inputs longer than the
// configured maximum length are split at sentence boundaries and the
// generated pieces rejoined.
func (a *Adapter) Generate(ctx context.Context, text string) string {
	a.load(ctx)
	if a.state.Load() != stateReady {
		return text
	}

	chunks := chunker.Chunk(text, a.cfg.MaxLength)
	outputs := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out, err := a.gen.Generate(ctx, a.cfg, chunk)
		if err != nil {
			a.log.Warn("inference failed",
				zap.String("backend", a.gen.Name()),
				zap.Error(err))
			return text
		}
		outputs = append(outputs, strings.TrimSpace(out))
	}

	return joinChunks(text, chunks, outputs)
}

// joinChunks reassembles per-chunk outputs using the separators that stood
// between the chunks in the original text. A backend that echoes every chunk
// unchanged must yield the input back, paragraph breaks included, so the
// NoCorrection check downstream still recognizes the echo.
func joinChunks(original string, chunks, outputs []string) string {
	if len(outputs) == 1 {
		return outputs[0]
	}

	var b strings.Builder
	pos := 0
	for i, chunk := range chunks {
		idx := strings.Index(original[pos:], chunk)
		if idx < 0 {
			return strings.Join(outputs, " ")
		}
		if i > 0 {
			b.WriteString(original[pos : pos+idx])
		}
		b.WriteString(outputs[i])
		pos += idx + len(chunk)
	}
	return b.String()
}

// Info returns backend diagnostics. It does not trigger a load.
func (a *Adapter) Info() Info {
	return Info{
		Backend:   a.gen.Name(),
		Model:     a.cfg.Model,
		Loaded:    a.state.Load() == stateReady,
		MaxLength: a.cfg.MaxLength,
		DoSample:  a.cfg.DoSample,
	}
}
