package directorymanager

import (
	"fmt"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/directory/record"
	"virtual-file-system/internal/filesystem/managers/blockmanager"
	"virtual-file-system/internal/filesystem/superblock"
)

// DirectoryManager mirrors directory slots into the directory zone.
type DirectoryManager struct {
	disk            *blockmanager.BlockManager
	entrySize       int
	maxEntries      int
	directoryOffset int
}

func NewDirectoryManager(disk *blockmanager.BlockManager, sb *superblock.Superblock) *DirectoryManager {
	return &DirectoryManager{
		disk:            disk,
		entrySize:       int(sb.EntrySize),
		maxEntries:      int(sb.MaxEntries),
		directoryOffset: sb.DirectoryOffset(),
	}
}

func (dm *DirectoryManager) SaveRecord(slot int, rec *record.Record) error {
	offset, err := dm.slotOffset(slot)
	if err != nil {
		return err
	}
	data, err := rec.Encode(dm.entrySize)
	if err != nil {
		return err
	}
	return dm.disk.WriteAt(data, offset)
}

func (dm *DirectoryManager) ResetRecord(slot int) error {
	offset, err := dm.slotOffset(slot)
	if err != nil {
		return err
	}
	return dm.disk.WriteAt(make([]byte, dm.entrySize), offset)
}

func (dm *DirectoryManager) ReadRecord(slot int) (record.Entry, bool, error) {
	offset, err := dm.slotOffset(slot)
	if err != nil {
		return record.Entry{}, false, err
	}
	data, err := dm.disk.ReadAt(offset, dm.entrySize)
	if err != nil {
		return record.Entry{}, false, err
	}
	return record.Decode(data)
}

func (dm *DirectoryManager) slotOffset(slot int) (int, error) {
	if slot < 0 || slot >= dm.maxEntries {
		return 0, fmt.Errorf("%w - directory slot %d", errs.ErrIllegalArgument, slot)
	}
	return dm.directoryOffset + slot*dm.entrySize, nil
}
