package hashmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cloudkitty-hashmap/internal/logging"
)

func observeInfo(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(logging.Use(zap.New(core)))
	return logs
}

func TestOutcomesAreLogged(t *testing.T) {
	logs := observeInfo(t)
	c := newFakeClient()

	_, err := run(t, c, "hashmap-service-create", NewArgs().SetString("name", "compute"))
	require.NoError(t, err)
	_, err = run(t, c, "hashmap-group-delete", NewArgs().SetString("group-id", "G9"))
	require.Error(t, err)
	_, err = run(t, c, "hashmap-service-delete", NewArgs().SetString("service-id", "S1"))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "service created", entries[0].Message)
	assert.Equal(t, "S1", entries[0].ContextMap()["service_id"])
	assert.Equal(t, "service deleted", entries[1].Message)
}

func TestMappingUpdateLogsChangedAttributes(t *testing.T) {
	logs := observeInfo(t)
	c := newFakeClient()
	c.mappings["M1"] = Mapping{MappingID: "M1", Type: MappingFlat}

	_, err := run(t, c, "hashmap-mapping-update", NewArgs().
		SetString("mapping-id", "M1").
		SetString("value", "m1.tiny").
		SetString("type", "rate"))
	require.NoError(t, err)

	updated := logs.FilterMessage("mapping updated").All()
	require.Len(t, updated, 1)
	assert.Equal(t, []interface{}{"type", "value"}, updated[0].ContextMap()["attributes"])
}
