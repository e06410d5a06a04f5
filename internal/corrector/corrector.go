// Package corrector decides which correction strategy's result is
// authoritative: the deterministic rule cascade, the generative model arm,
// or neither.
package corrector

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rdtech2020/pratik-grammars/internal/placeholder"
	"github.com/rdtech2020/pratik-grammars/internal/rules"
	"github.com/rdtech2020/pratik-grammars/internal/sanitize"
)

// Model is the generative arm as the corrector sees it: generation never
// fails (a degraded or erroring backend returns its input unchanged) and
// health is explicit state, not an exception.
type Model interface {
	Generate(ctx context.Context, text string) string
	Healthy(ctx context.Context) bool
}

// Policy parameterizes the decision procedure. ConfidenceThreshold is
// carried from configuration but consumed by no decision.
type Policy struct {
	RulesFirst          bool
	ModelFallback       bool
	ConfidenceThreshold float64
}

// DefaultPolicy matches the shipped configuration: rules first, model
// fallback enabled.
func DefaultPolicy() Policy {
	return Policy{RulesFirst: true, ModelFallback: true, ConfidenceThreshold: 0.7}
}

// Corrector composes the rule cascade, the model adapter, and the output
// sanitizer under a Policy. A single instance serves all requests; it holds
// no per-call mutable state.
type Corrector struct {
	cascade *rules.Cascade
	model   Model
	san     *sanitize.Sanitizer
	policy  Policy
	log     *zap.Logger
}

// New builds a Corrector. model may be nil when the generative arm is not
// configured; log may be nil.
func New(cascade *rules.Cascade, model Model, policy Policy, log *zap.Logger) *Corrector {
	if cascade == nil {
		cascade = rules.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Corrector{
		cascade: cascade,
		model:   model,
		san:     sanitize.New(),
		policy:  policy,
		log:     log,
	}
}

// Correct returns the corrected form of text, or text itself when no
// strategy produces a usable change. It never panics; any unexpected
// internal failure degrades to returning the input verbatim.
//
// The decision order is fixed: with RulesFirst, a rule-cascade change is
// terminal and the model arm is never consulted. When the rules make no
// change they are NOT retried after a failed model arm — the retry in the
// final step only fires when the rules were not the first attempt. This
// single-pass-per-strategy asymmetry is deliberate and load-bearing.
func (c *Corrector) Correct(ctx context.Context, text string) (corrected string) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("correction panicked, returning input unchanged", zap.Any("panic", r))
			corrected = text
		}
	}()

	if strings.TrimSpace(text) == "" {
		return text
	}

	buf, markers := placeholder.Protect(text)
	return placeholder.Restore(c.decide(ctx, buf, markers), markers)
}

func (c *Corrector) decide(ctx context.Context, text string, markers []string) string {
	if c.policy.RulesFirst {
		if fixed := c.cascade.Apply(text); fixed != text {
			c.log.Debug("rule cascade applied",
				zap.String("original", text), zap.String("corrected", fixed))
			return fixed
		}
	}

	if c.policy.ModelFallback && c.model != nil && c.model.Healthy(ctx) {
		raw := c.model.Generate(ctx, text)
		if cleaned, ok := c.san.Clean(raw, text); ok && placeholder.Intact(cleaned, markers) {
			c.log.Debug("model correction applied",
				zap.String("original", text), zap.String("corrected", cleaned))
			return cleaned
		}
	}

	if !c.policy.RulesFirst {
		if fixed := c.cascade.Apply(text); fixed != text {
			c.log.Debug("rule cascade fallback applied",
				zap.String("original", text), zap.String("corrected", fixed))
			return fixed
		}
	}

	return text
}

// BatchCorrect corrects each text in order.
func (c *Corrector) BatchCorrect(ctx context.Context, texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = c.Correct(ctx, t)
	}
	return out
}
