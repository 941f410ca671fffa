package blockmanager

import (
	"fmt"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/superblock"
)

// BlockManager owns the in-memory disk and moves bytes in and out of it.
type BlockManager struct {
	disk         []byte
	blockSize    int
	blockCount   int
	blocksOffset int
}

func NewBlockManager(sb *superblock.Superblock) *BlockManager {
	return &BlockManager{
		disk:         make([]byte, sb.DiskSize()),
		blockSize:    int(sb.BlockSize),
		blockCount:   int(sb.BlockCount),
		blocksOffset: sb.DataOffset(),
	}
}

// ReadBlocks concatenates min(blockSize, remaining) bytes of every block until
// size bytes are collected.
func (bm *BlockManager) ReadBlocks(blocks []int, size int) ([]byte, error) {
	if err := bm.checkBlocks(blocks); err != nil {
		return nil, err
	}
	if size < 0 || size > len(blocks)*bm.blockSize {
		return nil, fmt.Errorf("%w - %d bytes do not fit into %d blocks", errs.ErrIllegalArgument, size, len(blocks))
	}

	data := make([]byte, 0, size)
	remaining := size

	for _, blockIndex := range blocks {
		if remaining == 0 {
			break
		}
		toRead := min(bm.blockSize, remaining)
		offset := bm.blocksOffset + blockIndex*bm.blockSize

		data = append(data, bm.disk[offset:offset+toRead]...)
		remaining -= toRead
	}

	return data, nil
}

// WriteBlocks copies content into blocks in order. Content beyond the last
// block is dropped; the allocator always hands out enough blocks.
func (bm *BlockManager) WriteBlocks(blocks []int, content []byte) error {
	if err := bm.checkBlocks(blocks); err != nil {
		return err
	}

	pos := 0
	for _, blockIndex := range blocks {
		if pos >= len(content) {
			break
		}
		offset := bm.blocksOffset + blockIndex*bm.blockSize
		pos += copy(bm.disk[offset:offset+bm.blockSize], content[pos:])
	}

	return nil
}

func (bm *BlockManager) ResetBlocks(blocks []int) error {
	if err := bm.checkBlocks(blocks); err != nil {
		return err
	}

	for _, blockIndex := range blocks {
		offset := bm.blocksOffset + blockIndex*bm.blockSize
		clear(bm.disk[offset : offset+bm.blockSize])
	}

	return nil
}

// WriteAt writes raw bytes at an absolute region offset. It is used for the
// directory and metadata zones.
func (bm *BlockManager) WriteAt(data []byte, offset int) error {
	if offset < 0 || offset+len(data) > len(bm.disk) {
		return fmt.Errorf("%w - write of %d bytes at offset %d", errs.ErrIllegalArgument, len(data), offset)
	}
	copy(bm.disk[offset:], data)
	return nil
}

func (bm *BlockManager) ReadAt(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(bm.disk) {
		return nil, fmt.Errorf("%w - read of %d bytes at offset %d", errs.ErrIllegalArgument, length, offset)
	}
	data := make([]byte, length)
	copy(data, bm.disk[offset:offset+length])
	return data, nil
}

// Bytes returns a copy of the whole region.
func (bm *BlockManager) Bytes() []byte {
	data := make([]byte, len(bm.disk))
	copy(data, bm.disk)
	return data
}

func (bm *BlockManager) BlockSize() int {
	return bm.blockSize
}

func (bm *BlockManager) checkBlocks(blocks []int) error {
	for _, blockIndex := range blocks {
		if blockIndex < 0 || blockIndex >= bm.blockCount {
			return fmt.Errorf("%w - block %d out of range [0, %d)", errs.ErrIllegalArgument, blockIndex, bm.blockCount)
		}
	}
	return nil
}
