package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
	block   chan struct{}
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.text, f.err
}

func sampleRoster() []domain.Member {
	return []domain.Member{
		{ID: "m1", Name: "甜言蜜語", Group: "A"},
		{ID: "m2", Name: "CAKE", Group: "B"},
	}
}

func TestAnalyzeReturnsModelText(t *testing.T) {
	gen := &fakeGenerator{text: "集中資源於A組。"}
	svc := NewAdvisoryService(gen, zap.NewNop())

	text, err := svc.Analyze(context.Background(), sampleRoster())
	require.NoError(t, err)
	assert.Equal(t, "集中資源於A組。", text)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "strategic advisor")
	assert.Contains(t, gen.prompts[0], "甜言蜜語")
	assert.False(t, svc.Analyzing())
}

func TestAnalyzeEmptyRosterIsRejected(t *testing.T) {
	gen := &fakeGenerator{text: "unused"}
	svc := NewAdvisoryService(gen, zap.NewNop())

	_, err := svc.Analyze(context.Background(), nil)
	assert.Error(t, err)
	assert.Empty(t, gen.prompts, "the model must not be called for an empty roster")
}

func TestAnalyzeGenerationFailureYieldsFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("network down")}
	svc := NewAdvisoryService(gen, zap.NewNop())

	text, err := svc.Analyze(context.Background(), sampleRoster())
	require.NoError(t, err, "generation failures are absorbed, not propagated")
	assert.Equal(t, FallbackUnavailable, text)
	assert.False(t, svc.Analyzing())
}

func TestAnalyzeEmptyModelTextYieldsFallback(t *testing.T) {
	gen := &fakeGenerator{text: "  \n "}
	svc := NewAdvisoryService(gen, zap.NewNop())

	text, err := svc.Analyze(context.Background(), sampleRoster())
	require.NoError(t, err)
	assert.Equal(t, FallbackEmpty, text)
}

func TestAnalyzeWithoutGeneratorYieldsFallback(t *testing.T) {
	svc := NewAdvisoryService(nil, zap.NewNop())

	text, err := svc.Analyze(context.Background(), sampleRoster())
	require.NoError(t, err)
	assert.Equal(t, FallbackUnavailable, text)
}

func TestAnalyzeRejectsConcurrentRequests(t *testing.T) {
	gen := &fakeGenerator{text: "ok", block: make(chan struct{})}
	svc := NewAdvisoryService(gen, zap.NewNop())

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		close(started)
		text, err := svc.Analyze(context.Background(), sampleRoster())
		assert.NoError(t, err)
		assert.Equal(t, "ok", text)
	}()

	<-started
	// wait for the first call to take the busy flag
	for !svc.Analyzing() {
		runtime.Gosched()
	}

	_, err := svc.Analyze(context.Background(), sampleRoster())
	assert.Error(t, err, "a second concurrent analysis must be rejected")

	close(gen.block)
	<-done
	assert.False(t, svc.Analyzing())
}
