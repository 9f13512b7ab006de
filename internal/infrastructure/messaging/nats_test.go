package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.Publish(context.Background(), "meetings.outputs.generated", map[string]string{"a": "b"}))
	assert.NoError(t, p.Close())
}

func TestNewPublisher_UnreachableServer(t *testing.T) {
	_, err := NewPublisher("nats://127.0.0.1:1", zap.NewNop())
	assert.Error(t, err)
}
