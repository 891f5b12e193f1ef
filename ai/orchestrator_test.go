package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	modelID      string
	noSystemRole bool
}

// fakeCaller replays a scripted response per call, in order.
type fakeCaller struct {
	calls   []fakeCall
	results []any // string success or error failure, consumed in order
}

func (f *fakeCaller) Call(_ context.Context, model Model, _ string, _ []Message, noSystemRole bool, onChunk func(string)) (string, error) {
	f.calls = append(f.calls, fakeCall{modelID: model.ID, noSystemRole: noSystemRole})
	if len(f.results) == 0 {
		return "", errors.New("no scripted result")
	}
	r := f.results[0]
	f.results = f.results[1:]
	if err, ok := r.(error); ok {
		return "", err
	}
	text := r.(string)
	if onChunk != nil {
		onChunk(text)
	}
	return text, nil
}

func (f *fakeCaller) CallVision(_ context.Context, model Model, _, _, _ string) (string, error) {
	f.calls = append(f.calls, fakeCall{modelID: model.ID})
	if len(f.results) == 0 {
		return "", errors.New("no scripted result")
	}
	r := f.results[0]
	f.results = f.results[1:]
	if err, ok := r.(error); ok {
		return "", err
	}
	return r.(string), nil
}

func newTestOrchestrator(caller ModelCaller, models []Model) (*Orchestrator, *[]time.Duration) {
	o := NewOrchestrator(caller, WithModels(models))
	var slept []time.Duration
	o.sleep = func(d time.Duration) { slept = append(slept, d) }
	return o, &slept
}

var (
	modelA       = Model{ID: "a/model-a:free", Name: "Model A"}
	modelB       = Model{ID: "b/model-b:free", Name: "Model B"}
	gemmaLike    = Model{ID: "g/gemma:free", Name: "Gemma-like", NoSystemRole: true}
	visionModel  = Model{ID: "v/vision:free", Name: "Vision", Vision: true}
	userMessages = []Message{NewMessage(RoleUser, "write my log")}
)

func TestGenerateFirstModelSucceeds(t *testing.T) {
	caller := &fakeCaller{results: []any{"<h2>Log</h2>"}}
	o, slept := newTestOrchestrator(caller, []Model{modelA, modelB})

	got, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	assert.Equal(t, "<h2>Log</h2>", got)
	assert.Len(t, caller.calls, 1)
	assert.Empty(t, *slept)
}

func TestGenerateRateLimitBacksOffThenFallsThrough(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 429: rate limited"),
		errors.New("API error 429: rate limited"),
		"recovered",
	}}
	o, slept := newTestOrchestrator(caller, []Model{modelA, modelB})

	got, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", got)

	// Two 429s mean two backoffs with linearly growing delay, all on model A.
	require.Len(t, *slept, 2)
	assert.Equal(t, 5*time.Second, (*slept)[0])
	assert.Equal(t, 10*time.Second, (*slept)[1])
	require.Len(t, caller.calls, 3)
	for _, call := range caller.calls {
		assert.Equal(t, modelA.ID, call.modelID)
	}
}

func TestGenerateRateLimitExhaustsRetriesThenNextModel(t *testing.T) {
	results := []any{}
	for i := 0; i <= MaxRetries; i++ {
		results = append(results, errors.New("API error 429: rate limited"))
	}
	results = append(results, "from model B")
	caller := &fakeCaller{results: results}
	o, slept := newTestOrchestrator(caller, []Model{modelA, modelB})

	got, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	assert.Equal(t, "from model B", got)
	assert.Len(t, *slept, MaxRetries)
	assert.Equal(t, modelB.ID, caller.calls[len(caller.calls)-1].modelID)
}

func TestGenerateInvalidModelSkipsWithoutBackoff(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 404: a/model-a:free is not a valid model ID"),
		"from model B",
	}}
	o, slept := newTestOrchestrator(caller, []Model{modelA, modelB})

	got, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	assert.Equal(t, "from model B", got)
	assert.Empty(t, *slept)
	require.Len(t, caller.calls, 2)
	assert.Equal(t, modelB.ID, caller.calls[1].modelID)
}

func TestGenerateSystemRoleRejectionRetriesSameModel(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 400: Developer instruction is not enabled"),
		"without system role",
	}}
	o, slept := newTestOrchestrator(caller, []Model{modelA})

	got, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	assert.Equal(t, "without system role", got)
	assert.Empty(t, *slept)

	require.Len(t, caller.calls, 2)
	assert.False(t, caller.calls[0].noSystemRole)
	assert.True(t, caller.calls[1].noSystemRole)
	assert.Equal(t, modelA.ID, caller.calls[1].modelID)
}

func TestGenerateSystemRoleRejectionRepeatMovesToNextModel(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 400: Developer instruction is not enabled"),
		errors.New("API error 400: Developer instruction is not enabled"),
		"from model B",
	}}
	o, slept := newTestOrchestrator(caller, []Model{modelA, modelB})

	got, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	assert.Equal(t, "from model B", got)
	assert.Empty(t, *slept)

	// Model A gets exactly one merged retry; a second rejection is not
	// retryable and falls through to the next model.
	require.Len(t, caller.calls, 3)
	assert.Equal(t, modelA.ID, caller.calls[0].modelID)
	assert.False(t, caller.calls[0].noSystemRole)
	assert.Equal(t, modelA.ID, caller.calls[1].modelID)
	assert.True(t, caller.calls[1].noSystemRole)
	assert.Equal(t, modelB.ID, caller.calls[2].modelID)
	assert.False(t, caller.calls[2].noSystemRole)
}

func TestGenerateNoSystemRoleModelStartsMerged(t *testing.T) {
	caller := &fakeCaller{results: []any{"ok"}}
	o, _ := newTestOrchestrator(caller, []Model{gemmaLike})

	_, err := o.Generate(context.Background(), userMessages, Options{})
	require.NoError(t, err)
	require.Len(t, caller.calls, 1)
	assert.True(t, caller.calls[0].noSystemRole)
}

func TestGenerateAllModelsFailEmbedsLastError(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 500: boom A"),
		errors.New("API error 503: boom B"),
	}}
	o, _ := newTestOrchestrator(caller, []Model{modelA, modelB})

	_, err := o.Generate(context.Background(), userMessages, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all models unavailable")
	assert.Contains(t, err.Error(), "boom B")
}

func TestGenerateModelInfoCallback(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 429: rate limited"),
		"ok",
	}}
	o, _ := newTestOrchestrator(caller, []Model{modelA})

	var infos []string
	_, err := o.Generate(context.Background(), userMessages, Options{
		OnModelInfo: func(name string) { infos = append(infos, name) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Model A", "Model A (retry 1)"}, infos)
}

func TestGenerateChunkCallbackGetsAccumulatedText(t *testing.T) {
	caller := &fakeCaller{results: []any{"full text"}}
	o, _ := newTestOrchestrator(caller, []Model{modelA})

	var last string
	_, err := o.Generate(context.Background(), userMessages, Options{
		OnChunk: func(full string) { last = full },
	})
	require.NoError(t, err)
	assert.Equal(t, "full text", last)
}

func TestGenerateHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	caller := &fakeCaller{results: []any{"never used"}}
	o, _ := newTestOrchestrator(caller, []Model{modelA})

	_, err := o.Generate(ctx, userMessages, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, caller.calls)
}

func TestGenerateFromImageVisionModelsFirst(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 500: vision down"),
		"text model answer",
	}}
	o, _ := newTestOrchestrator(caller, []Model{modelA, visionModel})

	got, err := o.GenerateFromImage(context.Background(), "sys", "user", "https://example.com/cert.png")
	require.NoError(t, err)
	assert.Equal(t, "text model answer", got)

	require.Len(t, caller.calls, 2)
	assert.Equal(t, visionModel.ID, caller.calls[0].modelID)
	assert.Equal(t, modelA.ID, caller.calls[1].modelID)
}

func TestGenerateFromImageSingleAttemptPerModel(t *testing.T) {
	caller := &fakeCaller{results: []any{
		errors.New("API error 429: rate limited"),
		errors.New("API error 429: rate limited"),
	}}
	o, slept := newTestOrchestrator(caller, []Model{visionModel, modelA})

	_, err := o.GenerateFromImage(context.Background(), "sys", "user", "https://example.com/img.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all models failed")
	// No retries and no backoff in the vision path.
	assert.Len(t, caller.calls, 2)
	assert.Empty(t, *slept)
}

func TestVisionModelsFilter(t *testing.T) {
	got := VisionModels(FreeModels)
	require.Len(t, got, 2)
	assert.Equal(t, "meta-llama/llama-3.2-3b-instruct:free", got[0].ID)
	assert.Equal(t, "google/gemma-3-27b-it:free", got[1].ID)
}

func TestNewMessageAssignsID(t *testing.T) {
	m1 := NewMessage(RoleUser, "hello")
	m2 := NewMessage(RoleUser, "hello")
	assert.NotEmpty(t, m1.ID)
	assert.NotEqual(t, m1.ID, m2.ID)
	assert.Equal(t, RoleUser, m1.Role)
	assert.False(t, m1.Timestamp.IsZero())
}
