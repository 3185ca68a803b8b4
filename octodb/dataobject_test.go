package octodb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octris/octodb/octodb"
)

func TestDataObject(t *testing.T) {
	row := octodb.NewRow("id", 1, "name", "alice")
	obj := octodb.NewDataObject(nil, "users", row)

	assert.Nil(t, obj.Device())
	assert.Equal(t, "users", obj.Collection())
	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, "alice", obj.Get("name").MustGet())
	assert.True(t, obj.Get("missing").IsAbsent())
	assert.Equal(t, `users{id: 1, name: "alice"}`, obj.String())

	// The object owns its row.
	row[1].Value = "mallory"
	assert.Equal(t, "alice", obj.Get("name").MustGet())

	copied := obj.Row()
	copied[1].Value = "eve"
	assert.Equal(t, "alice", obj.Get("name").MustGet())
}

func TestDataObjectsMaterializer(t *testing.T) {
	row := octodb.NewRow("id", 7)
	obj, err := octodb.DataObjects().Materialize(nil, "orders", row)
	require.NoError(t, err)
	assert.Equal(t, "orders", obj.Collection())
	assert.True(t, row.Equal(obj.Row()))
}
