package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysScript(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: newUsage(10, 5)},
		MockJSON(map[string]int{"b": 2}),
		MockResponse{Content: json.RawMessage(`{"c"`), StopReason: StopMaxTokens},
	)
	ctx := context.Background()

	r1, err := mock.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(r1.Content))
	assert.Equal(t, 15, r1.Usage.TotalTokens)
	assert.Equal(t, StopEnd, r1.StopReason)
	assert.Equal(t, "mock", r1.Model)

	r2, err := mock.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(r2.Content))

	r3, err := mock.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, r3.StopReason)

	_, err = mock.Generate(ctx, Request{})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail, "exhausted script")
	assert.Equal(t, 4, mock.CallCount())
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestMockProvider_HonoursCancel(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]string{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)

	// The scripted reply is still there for the next caller.
	_, err = mock.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider()
	assert.Equal(t, Request{}, mock.LastRequest())

	mock.AddResponse(MockJSON(struct{}{}))
	_, _ = mock.Generate(context.Background(), Request{System: "sys", MaxTokens: 64})

	last := mock.LastRequest()
	assert.Equal(t, "sys", last.System)
	assert.Equal(t, 64, last.MaxTokens)
	assert.Equal(t, "mock", mock.ModelID())
}
