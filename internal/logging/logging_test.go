package logging

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, false)
	id, ok := log.Data["run"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	log.Info("hello")
	assert.Contains(t, buf.String(), "run="+id)
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New(&bytes.Buffer{}, true, true).Logger.GetLevel())
	assert.Equal(t, logrus.WarnLevel, New(&bytes.Buffer{}, false, true).Logger.GetLevel())
	assert.Equal(t, logrus.InfoLevel, New(&bytes.Buffer{}, false, false).Logger.GetLevel())
}

func TestRunIDsDiffer(t *testing.T) {
	a := New(&bytes.Buffer{}, false, false).Data["run"]
	b := New(&bytes.Buffer{}, false, false).Data["run"]
	assert.NotEqual(t, a, b)
}
