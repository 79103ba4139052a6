package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDescriptor_UnmarshalJSON(t *testing.T) {
	t.Run("splits known keys from passthrough fields", func(t *testing.T) {
		var d CommandDescriptor
		err := json.Unmarshal([]byte(`{"name":"ping","description":"p","command_return_text":"pong","nsfw":true}`), &d)
		require.NoError(t, err)

		assert.Equal(t, "ping", d.Name)
		assert.Equal(t, "p", d.Description)
		assert.Equal(t, "pong", d.Response())
		require.Contains(t, d.Fields, "nsfw")
		assert.JSONEq(t, `true`, string(d.Fields["nsfw"]))
		assert.NotContains(t, d.Fields, DescriptorKeyName)
	})

	t.Run("missing response text falls back to default", func(t *testing.T) {
		var d CommandDescriptor
		require.NoError(t, json.Unmarshal([]byte(`{"name":"a","description":"b"}`), &d))
		assert.Nil(t, d.ResponseText)
		assert.Equal(t, DefaultResponseText, d.Response())
		assert.Nil(t, d.Fields)
	})

	t.Run("empty response text is kept verbatim", func(t *testing.T) {
		var d CommandDescriptor
		require.NoError(t, json.Unmarshal([]byte(`{"name":"a","description":"b","command_return_text":""}`), &d))
		assert.Equal(t, "", d.Response())
	})

	t.Run("non-string name is rejected", func(t *testing.T) {
		var d CommandDescriptor
		err := json.Unmarshal([]byte(`{"name":5,"description":"b"}`), &d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), DescriptorKeyName)
	})
}

func TestCommandDescriptor_MarshalJSON(t *testing.T) {
	text := "pong"
	d := CommandDescriptor{
		Name:         "ping",
		Description:  "p",
		ResponseText: &text,
		Fields:       map[string]json.RawMessage{"nsfw": json.RawMessage(`false`)},
	}

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"ping","description":"p","command_return_text":"pong","nsfw":false}`, string(out))
}

func TestCompiledCommand_VisibleIn(t *testing.T) {
	guild := CompiledCommand{Name: "ping", Scope: "111"}
	global := CompiledCommand{Name: "help", Scope: GlobalScope}

	assert.True(t, guild.VisibleIn("111"))
	assert.False(t, guild.VisibleIn("222"))
	assert.True(t, global.VisibleIn("111"))
	assert.True(t, global.VisibleIn("222"))
}

func TestPhaseAndScopeStateStrings(t *testing.T) {
	assert.Equal(t, "BOOTSTRAPPING", PhaseBootstrapping.String())
	assert.Equal(t, "READY", PhaseReady.String())
	assert.Equal(t, "UNSYNCED", ScopeUnsynced.String())
	assert.Equal(t, "SYNCING", ScopeSyncing.String())
	assert.Equal(t, "SYNCED", ScopeSynced.String())
}
