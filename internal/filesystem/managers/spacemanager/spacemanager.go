// Package spacemanager hands out data-zone blocks.
//
// Free blocks live in two pools. The fresh pool holds blocks never used since
// start and is consumed oldest-first. The released pool holds blocks given back
// by files and is consumed most-recently-released-first. Allocation always
// drains the released pool before touching the fresh one.
package spacemanager

import (
	"encoding/binary"
	"fmt"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/bitmap"
	"virtual-file-system/internal/utils"
)

type SpaceManager struct {
	blockSize  int
	blockCount int
	fresh      []int // FIFO, head at index 0
	released   []int // LIFO, top at the end
	used       *bitmap.Bitmap
}

func NewSpaceManager(blockCount, blockSize int) *SpaceManager {
	fresh := make([]int, blockCount)
	for i := range fresh {
		fresh[i] = i
	}

	return &SpaceManager{
		blockSize:  blockSize,
		blockCount: blockCount,
		fresh:      fresh,
		released:   make([]int, 0, blockCount),
		used:       bitmap.NewBitmap(uint32(blockCount)),
	}
}

// Allocate returns ceil(byteLength/blockSize) distinct block indices.
//
// When the pools cannot satisfy the request every collected index is pushed
// onto the released pool, not returned to the pool it came from. Free counts
// are unchanged by a failed call but block positions are not.
func (sm *SpaceManager) Allocate(byteLength int) ([]int, error) {
	if byteLength < 0 {
		return nil, fmt.Errorf("%w - negative length %d", errs.ErrIllegalArgument, byteLength)
	}

	needed := utils.BlocksNeeded(byteLength, sm.blockSize)
	alloc := make([]int, 0, needed)

	for len(sm.released) > 0 && len(alloc) < needed {
		top := len(sm.released) - 1
		alloc = append(alloc, sm.released[top])
		sm.released = sm.released[:top]
	}
	for len(sm.fresh) > 0 && len(alloc) < needed {
		alloc = append(alloc, sm.fresh[0])
		sm.fresh = sm.fresh[1:]
	}

	if len(alloc) < needed {
		sm.released = append(sm.released, alloc...)
		return nil, fmt.Errorf("%w - need %d blocks, %d free", errs.ErrInsufficientSpace, needed, len(alloc))
	}

	for _, blockIndex := range alloc {
		sm.used.SetBit(blockIndex, 1)
	}

	return alloc, nil
}

// Release pushes blocks onto the released pool in order. The whole call is
// rejected if any index is out of range, not allocated, or repeated.
func (sm *SpaceManager) Release(blocks []int) error {
	seen := make(map[int]struct{}, len(blocks))
	for _, blockIndex := range blocks {
		bit, err := sm.used.GetBit(blockIndex)
		if err != nil {
			return fmt.Errorf("%w - block %d out of range", errs.ErrIllegalArgument, blockIndex)
		}
		if bit == 0 {
			return fmt.Errorf("%w - block %d is not allocated", errs.ErrIllegalArgument, blockIndex)
		}
		if _, dup := seen[blockIndex]; dup {
			return fmt.Errorf("%w - block %d released twice", errs.ErrIllegalArgument, blockIndex)
		}
		seen[blockIndex] = struct{}{}
	}

	for _, blockIndex := range blocks {
		sm.used.SetBit(blockIndex, 0)
		sm.released = append(sm.released, blockIndex)
	}

	return nil
}

// Usage is the fraction of data blocks that are not free.
func (sm *SpaceManager) Usage() float64 {
	if sm.blockCount == 0 {
		return 0
	}
	return float64(sm.blockCount-sm.FreeCount()) / float64(sm.blockCount)
}

func (sm *SpaceManager) FreeCount() int {
	return len(sm.fresh) + len(sm.released)
}

func (sm *SpaceManager) FreshCount() int {
	return len(sm.fresh)
}

func (sm *SpaceManager) ReleasedCount() int {
	return len(sm.released)
}

func (sm *SpaceManager) BlockCount() int {
	return sm.blockCount
}

func (sm *SpaceManager) UsedCount() int {
	return sm.used.Count()
}

// Pools returns copies of both pools: fresh from head to tail and released
// from bottom to top.
func (sm *SpaceManager) Pools() (fresh []int, released []int) {
	return append([]int(nil), sm.fresh...), append([]int(nil), sm.released...)
}

// EncodedSize is the number of bytes Encode produces for a disk with
// blockCount blocks, whatever the pool contents.
func EncodedSize(blockCount int) int {
	return 8 + 4*blockCount
}

// Encode lays out both pools for the metadata zone:
// freshLen u32 | releasedLen u32 | fresh... | released... , zero padded to
// EncodedSize.
func (sm *SpaceManager) Encode() []byte {
	data := make([]byte, EncodedSize(sm.blockCount))

	binary.BigEndian.PutUint32(data[0:4], uint32(len(sm.fresh)))
	binary.BigEndian.PutUint32(data[4:8], uint32(len(sm.released)))

	offset := 8
	for _, pool := range [][]int{sm.fresh, sm.released} {
		for _, blockIndex := range pool {
			binary.BigEndian.PutUint32(data[offset:offset+4], uint32(blockIndex))
			offset += 4
		}
	}

	return data
}

// DecodePools is the inverse of Encode.
func DecodePools(data []byte) (fresh []int, released []int, err error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("%w - pool header truncated", errs.ErrIllegalArgument)
	}

	freshLen := int(binary.BigEndian.Uint32(data[0:4]))
	releasedLen := int(binary.BigEndian.Uint32(data[4:8]))
	if len(data) < 8+4*(freshLen+releasedLen) {
		return nil, nil, fmt.Errorf("%w - pool data truncated", errs.ErrIllegalArgument)
	}

	read := func(offset, n int) []int {
		pool := make([]int, n)
		for i := range pool {
			pool[i] = int(binary.BigEndian.Uint32(data[offset+4*i : offset+4*i+4]))
		}
		return pool
	}

	fresh = read(8, freshLen)
	released = read(8+4*freshLen, releasedLen)
	return fresh, released, nil
}
