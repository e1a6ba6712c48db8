// Test Type: Unit Test
// Description: Tests for the recording sink

package testutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingSink(t *testing.T) {
	s := NewRecordingSink()
	require.NoError(t, s.Init(true))
	require.NoError(t, s.WriteValue(1, 1, "b"))
	require.NoError(t, s.WriteValue(1, 0, "a"))
	require.NoError(t, s.WriteValue(2, 0, nil))

	assert.Equal(t, 1, s.HeaderRows())
	assert.Equal(t, []any{"a", "b"}, s.Row(1))
	assert.Len(t, s.WritesOn(1), 2)

	v, ok := s.Get(2, 0)
	assert.True(t, ok)
	assert.Nil(t, v)
	_, ok = s.Get(3, 0)
	assert.False(t, ok)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "1,0=a\n1,1=b\n2,0=<nil>\n", buf.String())
}

func TestRecordingSinkFailWrite(t *testing.T) {
	boom := errors.New("boom")
	s := &RecordingSink{FailWrite: boom}
	require.NoError(t, s.Init(false))

	assert.ErrorIs(t, s.WriteValue(0, 0, 1), boom)
	assert.Empty(t, s.Writes)
}
