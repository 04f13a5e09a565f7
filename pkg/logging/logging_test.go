package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	require.NoError(t, SetLevel("WARN"))
	assert.Equal(t, logrus.WarnLevel, Log.GetLevel())

	require.NoError(t, SetLevel(""))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestSetFormat(t *testing.T) {
	t.Cleanup(func() { SetFormat("text") })

	SetFormat("json")
	_, ok := Log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	SetFormat("text")
	_, ok = Log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}
