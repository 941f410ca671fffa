package directory

import (
	"fmt"
	"testing"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/directory/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLookupAndOrder(t *testing.T) {
	d := NewDirectory(4)

	for _, name := range []string{"b", "a", "c"} {
		_, err := d.AddFile(record.NewRecord(name, nil, 0))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, d.Len())
	assert.Equal(t, []string{"b", "a", "c"}, names(d))

	slot, rec, err := d.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	assert.Equal(t, "a", rec.Name)

	_, rec, err = d.At(3)
	require.NoError(t, err)
	assert.Equal(t, "c", rec.Name)
}

func TestAddRejectsDuplicatesAndOverflow(t *testing.T) {
	d := NewDirectory(2)

	_, err := d.AddFile(record.NewRecord("x", nil, 0))
	require.NoError(t, err)

	_, err = d.AddFile(record.NewRecord("x", nil, 0))
	assert.ErrorIs(t, err, errs.ErrRecordAlreadyExists)

	_, err = d.AddFile(record.NewRecord("y", nil, 0))
	require.NoError(t, err)
	assert.True(t, d.Full())

	_, err = d.AddFile(record.NewRecord("z", nil, 0))
	assert.ErrorIs(t, err, errs.ErrCapacityExceeded)
}

func TestDeleteReusesSlotButKeepsCreationOrder(t *testing.T) {
	d := NewDirectory(3)

	for i := 1; i <= 3; i++ {
		_, err := d.AddFile(record.NewRecord(fmt.Sprintf("file%d", i), nil, 0))
		require.NoError(t, err)
	}

	slot, _, err := d.Lookup("file1")
	require.NoError(t, err)
	d.DeleteFile(slot)

	assert.False(t, d.Contains("file1"))
	assert.Nil(t, d.Record(slot))
	assert.Equal(t, []string{"file2", "file3"}, names(d))

	newSlot, err := d.AddFile(record.NewRecord("file4", nil, 0))
	require.NoError(t, err)
	assert.Equal(t, slot, newSlot, "freed slot is reused")
	assert.Equal(t, []string{"file2", "file3", "file4"}, names(d))

	_, rec, err := d.At(3)
	require.NoError(t, err)
	assert.Equal(t, "file4", rec.Name)
}

func TestLookupErrors(t *testing.T) {
	d := NewDirectory(2)

	_, _, err := d.Lookup("missing")
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)

	for _, position := range []int{0, 1, -3} {
		_, _, err = d.At(position)
		assert.ErrorIs(t, err, errs.ErrInvalidIndex, "position %d", position)
	}

	d.DeleteFile(0)
	d.DeleteFile(-1)
	assert.Equal(t, 0, d.Len())
}

func TestIndexMatchesEntries(t *testing.T) {
	d := NewDirectory(8)

	for i := 0; i < 8; i++ {
		_, err := d.AddFile(record.NewRecord(fmt.Sprintf("f%d", i), nil, 0))
		require.NoError(t, err)
	}
	for _, name := range []string{"f3", "f0", "f7"} {
		slot, _, err := d.Lookup(name)
		require.NoError(t, err)
		d.DeleteFile(slot)
	}

	require.Len(t, d.index, d.Len())
	for position, slot := range d.Slots() {
		rec := d.Record(slot)
		require.NotNil(t, rec)
		indexed, exist := d.index[rec.Name]
		assert.True(t, exist)
		assert.Equal(t, slot, indexed)

		_, byPosition, err := d.At(position + 1)
		require.NoError(t, err)
		assert.Same(t, rec, byPosition)
	}
}

func names(d *Directory) []string {
	var result []string
	for _, slot := range d.Slots() {
		result = append(result, d.Record(slot).Name)
	}
	return result
}
