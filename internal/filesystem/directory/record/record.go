package record

import (
	"encoding/binary"
	"fmt"

	"virtual-file-system/internal/errs"
)

type State uint8

const (
	StateActive State = iota + 1
	// StateInconsistent marks a record whose content could not be restored
	// after a failed edit. It owns no blocks and can only be deleted.
	StateInconsistent
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateInconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const MaxNameLength = 255

// HeaderSize is the encoded size of a record without its name:
// state u8 | nameLen u8 | size u32 | blockCount u32 | firstBlock u32.
const HeaderSize = 1 + 1 + 4 + 4 + 4

const noBlock = 0xFFFFFFFF

type Record struct {
	Name   string
	Blocks []int
	Size   int
	State  State
}

func NewRecord(name string, blocks []int, size int) *Record {
	return &Record{
		Name:   name,
		Blocks: blocks,
		Size:   size,
		State:  StateActive,
	}
}

// Entry is what a directory slot holds about a record.
type Entry struct {
	State      State
	Name       string
	Size       int
	BlockCount int
	FirstBlock int // -1 when the record owns no blocks
}

func (r Record) Entry() Entry {
	first := -1
	if len(r.Blocks) > 0 {
		first = r.Blocks[0]
	}
	return Entry{
		State:      r.State,
		Name:       r.Name,
		Size:       r.Size,
		BlockCount: len(r.Blocks),
		FirstBlock: first,
	}
}

// ValidateName checks that name is usable as a key and fits a slot of
// slotSize bytes.
func ValidateName(name string, slotSize int) error {
	if name == "" {
		return fmt.Errorf("%w - empty name", errs.ErrIncorrectFileName)
	}
	if len(name) > MaxNameLength || HeaderSize+len(name) > slotSize {
		return fmt.Errorf("%w - %s is too long", errs.ErrIncorrectFileName, name)
	}
	return nil
}

// Encode returns the record as a slotSize-byte directory slot.
func (r Record) Encode(slotSize int) ([]byte, error) {
	if err := ValidateName(r.Name, slotSize); err != nil {
		return nil, err
	}

	data := make([]byte, slotSize)
	entry := r.Entry()

	first := uint32(noBlock)
	if entry.FirstBlock >= 0 {
		first = uint32(entry.FirstBlock)
	}

	data[0] = byte(r.State)
	data[1] = uint8(len(r.Name))
	binary.BigEndian.PutUint32(data[2:6], uint32(r.Size))
	binary.BigEndian.PutUint32(data[6:10], uint32(entry.BlockCount))
	binary.BigEndian.PutUint32(data[10:14], first)
	copy(data[HeaderSize:], r.Name)

	return data, nil
}

// Decode reads a directory slot. ok is false for an empty slot.
func Decode(data []byte) (entry Entry, ok bool, err error) {
	if len(data) < HeaderSize {
		return Entry{}, false, fmt.Errorf("%w - slot of %d bytes", errs.ErrIllegalArgument, len(data))
	}
	if data[0] == 0 {
		return Entry{}, false, nil
	}

	nameLength := int(data[1])
	if HeaderSize+nameLength > len(data) {
		return Entry{}, false, fmt.Errorf("%w - name overflows slot", errs.ErrIllegalArgument)
	}

	entry.State = State(data[0])
	entry.Size = int(binary.BigEndian.Uint32(data[2:6]))
	entry.BlockCount = int(binary.BigEndian.Uint32(data[6:10]))
	entry.FirstBlock = -1
	if first := binary.BigEndian.Uint32(data[10:14]); first != noBlock {
		entry.FirstBlock = int(first)
	}
	entry.Name = string(data[HeaderSize : HeaderSize+nameLength])

	return entry, true, nil
}
