package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	mu     sync.Mutex
	calls  int
	out    string
	err    error
	closed bool
}

func (s *stubClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return s.GenerateJSON(ctx, prompt, tier)
}

func (s *stubClient) GenerateJSON(context.Context, string, ModelTier) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.out, s.err
}

func (s *stubClient) GetModel(ModelTier) string { return "stub-model" }

func (s *stubClient) Close() error {
	s.closed = true
	return nil
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
		MinRequests:      2,
		FailureThreshold: 0.5,
	}
}

func TestWithBreaker_Disabled(t *testing.T) {
	stub := &stubClient{}
	assert.Same(t, stub, WithBreaker(stub, BreakerConfig{}))
}

func TestBreakerClient_PassesThrough(t *testing.T) {
	stub := &stubClient{out: `{"suggestions":[]}`}
	client := WithBreaker(stub, testBreakerConfig())

	out, err := client.GenerateJSON(context.Background(), "p", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, `{"suggestions":[]}`, out)
	assert.Equal(t, "stub-model", client.GetModel(TierStandard))

	require.NoError(t, client.Close())
	assert.True(t, stub.closed)
}

func TestBreakerClient_OpensAfterFailures(t *testing.T) {
	stub := &stubClient{err: errors.New("503 from provider")}
	client := WithBreaker(stub, testBreakerConfig()).(*BreakerClient)

	for i := 0; i < 2; i++ {
		_, err := client.GenerateJSON(context.Background(), "p", TierStandard)
		require.Error(t, err)
	}
	assert.False(t, client.Healthy())
	assert.Equal(t, "open", client.State())

	_, err := client.GenerateContent(context.Background(), "p", TierStandard)
	var openErr *CircuitOpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, 2, stub.calls, "open circuit does not reach the provider")
}

func TestBreakerClient_CancellationIsNotAFailure(t *testing.T) {
	stub := &stubClient{err: context.Canceled}
	client := WithBreaker(stub, testBreakerConfig()).(*BreakerClient)

	for i := 0; i < 5; i++ {
		_, err := client.GenerateJSON(context.Background(), "p", TierStandard)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.True(t, client.Healthy())
}
