package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValueScan(t *testing.T) {
	list := StringList{"rides", "events"}

	value, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, `["rides","events"]`, value)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)
}

func TestStringListScanNull(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(nil))
	assert.Equal(t, StringList{}, list)

	require.NoError(t, list.Scan(""))
	assert.Equal(t, StringList{}, list)
}

func TestStringListMarshalNilAsEmptyArray(t *testing.T) {
	var list StringList
	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
