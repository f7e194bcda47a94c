package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNew_WithoutProjectIsNoop(t *testing.T) {
	c := New("")
	defer c.Close()

	assert.NoError(t, c.SendMessage(EventWarScanned, WarScanned{RunID: "r1"}))
}

func TestProcessMessage_DecodesTrigger(t *testing.T) {
	data, err := msgpack.Marshal(map[string]any{"job": JobRefresh, "dry_run": true})
	require.NoError(t, err)

	var trigger Trigger
	require.NoError(t, noopClient{}.ProcessMessage(data, &trigger))
	assert.Equal(t, JobRefresh, trigger.Job)
	assert.True(t, trigger.DryRun)
	assert.Empty(t, trigger.RunID)
}

func TestProcessMessage_RejectsGarbage(t *testing.T) {
	var trigger Trigger
	assert.Error(t, noopClient{}.ProcessMessage([]byte{0xc1}, &trigger))
}
