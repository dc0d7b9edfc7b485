package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, production := range []bool{true, false} {
		logger, err := New(production)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.Equal(t, !production, logger.Core().Enabled(zapcore.DebugLevel))
	}
}
