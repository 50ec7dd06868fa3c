package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var (
	errDown    = &ErrProviderUnavailable{Err: errors.New("down")}
	errGarbled = &ErrInvalidResponse{Content: json.RawMessage(`nope`), Err: errors.New("not JSON")}
	okReply    = MockResponse{Content: json.RawMessage(`{"ok":true}`)}
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errClass
	}{
		{"unavailable", errDown, classTransient},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, classTransient},
		{"wrapped rate limit", fmt.Errorf("insight: %w", &ErrRateLimit{}), classTransient},
		{"invalid", errGarbled, classInvalid},
		{"truncated", &ErrMaxTokensExceeded{}, classFatal},
		{"not configured", fmt.Errorf("openai: %w", ErrNotConfigured), classFatal},
		{"cancelled", context.Canceled, classFatal},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), classFatal},
		{"rejected", fromStatus(401, nil, errors.New("bad key")), classFatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		script    []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okReply}, false, 1},
		{"transient then ok", []MockResponse{{Err: errDown}, okReply}, false, 2},
		{"gives up after max attempts", []MockResponse{{Err: errDown}, {Err: errDown}, {Err: errDown}, okReply}, true, 3},
		{"truncation is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okReply}, true, 1},
		{"invalid retried once", []MockResponse{{Err: errGarbled}, okReply}, false, 2},
		{"invalid twice", []MockResponse{{Err: errGarbled}, {Err: errGarbled}, okReply}, true, 2},
		{"invalid after transient", []MockResponse{{Err: errDown}, {Err: errGarbled}, okReply}, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			resp, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_StopsWhenContextEnds(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errDown}, okReply)
	cfg := fastRetry()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(mock, cfg, nil).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(okReply)
	_, err := WithRetry(mock, RetryConfig{}, nil).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Delay(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{
		InitialWait: 100 * time.Millisecond,
		MaxWait:     300 * time.Millisecond,
		Multiplier:  2,
	}}

	within := func(d, want time.Duration) bool {
		return d >= want*8/10 && d <= want*12/10
	}
	assert.True(t, within(r.delay(1, errDown), 100*time.Millisecond))
	assert.True(t, within(r.delay(2, errDown), 200*time.Millisecond))
	assert.True(t, within(r.delay(5, errDown), 300*time.Millisecond), "capped at MaxWait")

	rl := &ErrRateLimit{RetryAfter: 7 * time.Second}
	assert.Equal(t, 7*time.Second, r.delay(1, rl))
}
