package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_MarshalUnixSeconds(t *testing.T) {
	ts := FromUnix(1712345678)
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "1712345678", string(b))
}

func TestTimestamp_UnmarshalStrategies(t *testing.T) {
	t.Run("unix number", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`1712345678`), &ts))
		assert.Equal(t, int64(1712345678), ts.Unix())
	})

	t.Run("rfc3339 string fallback", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2024-04-05T17:34:38Z"`), &ts))
		assert.Equal(t, int64(1712338478), ts.Unix())
	})

	t.Run("null keeps zero", func(t *testing.T) {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
		assert.True(t, ts.IsZero())
	})

	t.Run("garbage fails", func(t *testing.T) {
		var ts Timestamp
		assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &ts))
	})
}

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := Now()
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	var got Timestamp
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, ts, got)
}
