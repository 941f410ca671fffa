package directory

import (
	"fmt"
	"slices"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/directory/record"
)

// Directory is a flat table of records kept in an arena of slots. Slot numbers
// are stable for the life of a record and double as directory-zone slots;
// listing order is creation order and is tracked separately.
type Directory struct {
	slots      []*record.Record
	freeSlots  []int
	order      []int
	index      map[string]int
	maxEntries int
}

func NewDirectory(maxEntries int) *Directory {
	return &Directory{
		index:      make(map[string]int),
		maxEntries: maxEntries,
	}
}

func (d *Directory) Len() int {
	return len(d.order)
}

func (d *Directory) MaxEntries() int {
	return d.maxEntries
}

func (d *Directory) Full() bool {
	return len(d.order) >= d.maxEntries
}

func (d *Directory) Contains(name string) bool {
	_, exist := d.index[name]
	return exist
}

// AddFile stores rec at the end of the listing and returns its slot.
func (d *Directory) AddFile(rec *record.Record) (int, error) {
	if d.Contains(rec.Name) {
		return 0, fmt.Errorf("%w - %s", errs.ErrRecordAlreadyExists, rec.Name)
	}
	if d.Full() {
		return 0, fmt.Errorf("%w - %d entries", errs.ErrCapacityExceeded, d.maxEntries)
	}

	var slot int
	if n := len(d.freeSlots); n > 0 {
		slot = d.freeSlots[n-1]
		d.freeSlots = d.freeSlots[:n-1]
		d.slots[slot] = rec
	} else {
		slot = len(d.slots)
		d.slots = append(d.slots, rec)
	}

	d.order = append(d.order, slot)
	d.index[rec.Name] = slot

	return slot, nil
}

func (d *Directory) DeleteFile(slot int) {
	rec := d.get(slot)
	if rec == nil {
		return
	}

	delete(d.index, rec.Name)
	d.order = slices.DeleteFunc(d.order, func(s int) bool { return s == slot })
	d.slots[slot] = nil
	d.freeSlots = append(d.freeSlots, slot)
}

// Lookup finds a record by name.
func (d *Directory) Lookup(name string) (int, *record.Record, error) {
	slot, exist := d.index[name]
	if !exist {
		return 0, nil, fmt.Errorf("%w - %s", errs.ErrRecordNotFound, name)
	}
	return slot, d.slots[slot], nil
}

// At finds a record by its 1-based position in the listing.
func (d *Directory) At(position int) (int, *record.Record, error) {
	if position < 1 || position > len(d.order) {
		return 0, nil, fmt.Errorf("%w - %d", errs.ErrInvalidIndex, position)
	}
	slot := d.order[position-1]
	return slot, d.slots[slot], nil
}

// Slots returns the slot of every record in listing order.
func (d *Directory) Slots() []int {
	return slices.Clone(d.order)
}

// Record returns the record stored in slot, or nil.
func (d *Directory) Record(slot int) *record.Record {
	return d.get(slot)
}

func (d *Directory) get(slot int) *record.Record {
	if slot < 0 || slot >= len(d.slots) {
		return nil
	}
	return d.slots[slot]
}
