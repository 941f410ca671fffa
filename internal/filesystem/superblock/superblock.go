package superblock

import (
	"encoding/binary"
	"errors"
)

const MagicNumber = 0x1234

// encodedSize is the on-region size of a Superblock: one uint16 and nine uint32.
const encodedSize = 2 + 9*4

var ErrBadSuperblock = errors.New("bad superblock")

// Superblock describes the layout of the region. The directory zone starts at
// offset 0 and is followed by the metadata zone and the data zone.
type Superblock struct {
	MagicNumber    uint16
	BlockSize      uint32
	BlockCount     uint32
	FreeBlockCount uint32
	EntrySize      uint32
	MaxEntries     uint32
	EntryCount     uint32
	DirectorySize  uint32
	MetadataSize   uint32
	DataSize       uint32
}

func NewSuperblock(directorySize, metadataSize, dataSize, blockSize, entrySize uint32) *Superblock {
	s := Superblock{}

	blockCount := dataSize / blockSize

	s.MagicNumber = MagicNumber
	s.BlockSize = blockSize
	s.BlockCount = blockCount
	s.FreeBlockCount = blockCount
	s.EntrySize = entrySize
	s.MaxEntries = directorySize / entrySize
	s.DirectorySize = directorySize
	s.MetadataSize = metadataSize
	s.DataSize = dataSize

	return &s
}

func (s Superblock) DirectoryOffset() int {
	return 0
}

func (s Superblock) MetadataOffset() int {
	return int(s.DirectorySize)
}

func (s Superblock) DataOffset() int {
	return int(s.DirectorySize) + int(s.MetadataSize)
}

// DiskSize is the total length of the region in bytes.
func (s Superblock) DiskSize() int {
	return int(s.DirectorySize) + int(s.MetadataSize) + int(s.DataSize)
}

func (s Superblock) Size() int {
	return encodedSize
}

func (s Superblock) Encode() []byte {
	data := make([]byte, encodedSize)

	binary.BigEndian.PutUint16(data[0:2], s.MagicNumber)
	binary.BigEndian.PutUint32(data[2:6], s.BlockSize)
	binary.BigEndian.PutUint32(data[6:10], s.BlockCount)
	binary.BigEndian.PutUint32(data[10:14], s.FreeBlockCount)
	binary.BigEndian.PutUint32(data[14:18], s.EntrySize)
	binary.BigEndian.PutUint32(data[18:22], s.MaxEntries)
	binary.BigEndian.PutUint32(data[22:26], s.EntryCount)
	binary.BigEndian.PutUint32(data[26:30], s.DirectorySize)
	binary.BigEndian.PutUint32(data[30:34], s.MetadataSize)
	binary.BigEndian.PutUint32(data[34:38], s.DataSize)

	return data
}

func Decode(data []byte) (*Superblock, error) {
	if len(data) < encodedSize {
		return nil, ErrBadSuperblock
	}

	s := Superblock{}

	s.MagicNumber = binary.BigEndian.Uint16(data[0:2])
	if s.MagicNumber != MagicNumber {
		return nil, ErrBadSuperblock
	}
	s.BlockSize = binary.BigEndian.Uint32(data[2:6])
	s.BlockCount = binary.BigEndian.Uint32(data[6:10])
	s.FreeBlockCount = binary.BigEndian.Uint32(data[10:14])
	s.EntrySize = binary.BigEndian.Uint32(data[14:18])
	s.MaxEntries = binary.BigEndian.Uint32(data[18:22])
	s.EntryCount = binary.BigEndian.Uint32(data[22:26])
	s.DirectorySize = binary.BigEndian.Uint32(data[26:30])
	s.MetadataSize = binary.BigEndian.Uint32(data[30:34])
	s.DataSize = binary.BigEndian.Uint32(data[34:38])

	return &s, nil
}
