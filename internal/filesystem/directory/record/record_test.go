package record

import (
	"strings"
	"testing"

	"virtual-file-system/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		record *Record
		want   Entry
	}{
		{
			name:   "file with blocks",
			record: NewRecord("notes.txt", []int{7, 3, 12}, 2500),
			want:   Entry{State: StateActive, Name: "notes.txt", Size: 2500, BlockCount: 3, FirstBlock: 7},
		},
		{
			name:   "empty file",
			record: NewRecord("empty", nil, 0),
			want:   Entry{State: StateActive, Name: "empty", Size: 0, BlockCount: 0, FirstBlock: -1},
		},
		{
			name:   "inconsistent file",
			record: &Record{Name: "lost", Size: 10, State: StateInconsistent},
			want:   Entry{State: StateInconsistent, Name: "lost", Size: 10, BlockCount: 0, FirstBlock: -1},
		},
		{
			name:   "block zero",
			record: NewRecord("zero", []int{0}, 1),
			want:   Entry{State: StateActive, Name: "zero", Size: 1, BlockCount: 1, FirstBlock: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.record.Encode(500)
			require.NoError(t, err)
			require.Len(t, data, 500)

			got, ok, err := Decode(data)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.record.Entry(), got)
		})
	}
}

func TestDecodeEmptySlot(t *testing.T) {
	_, ok, err := Decode(make([]byte, 500))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Decode(make([]byte, 3))
	assert.ErrorIs(t, err, errs.ErrIllegalArgument)
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name     string
		slotSize int
		valid    bool
	}{
		{"a", 500, true},
		{"", 500, false},
		{strings.Repeat("n", MaxNameLength), 500, true},
		{strings.Repeat("n", MaxNameLength+1), 500, false},
		{strings.Repeat("n", 20), HeaderSize + 20, true},
		{strings.Repeat("n", 21), HeaderSize + 20, false},
	}

	for _, tc := range tests {
		err := ValidateName(tc.name, tc.slotSize)
		if tc.valid {
			assert.NoError(t, err, "name of %d bytes in slot %d", len(tc.name), tc.slotSize)
		} else {
			assert.ErrorIs(t, err, errs.ErrIncorrectFileName, "name of %d bytes in slot %d", len(tc.name), tc.slotSize)
		}
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "inconsistent", StateInconsistent.String())
	assert.Equal(t, "unknown", State(0).String())
}
