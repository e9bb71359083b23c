package ctxlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns embedded logger", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)
		ctx := WithLogger(context.Background(), zap.New(core))

		FromContext(ctx).Info("hello")
		assert.Equal(t, 1, logs.FilterMessage("hello").Len())
	})

	t.Run("falls back to global logger", func(t *testing.T) {
		assert.Same(t, zap.L(), FromContext(context.Background()))
	})
}
