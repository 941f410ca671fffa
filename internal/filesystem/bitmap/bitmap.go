package bitmap

import (
	"errors"
)

type Bitmap struct {
	Data []uint8
	Size uint32
	set  uint32
}

func NewBitmap(size uint32) *Bitmap {
	data := make([]uint8, (size+7)/8)
	return &Bitmap{Data: data, Size: size}
}

func (b *Bitmap) SetBit(index int, value int) error {
	if index < 0 || index >= int(b.Size) {
		return errors.New("index out of bounds")
	}
	if value != 0 && value != 1 {
		return errors.New("invalid bit value")
	}

	byteIndex, bitOffset := index/8, uint(index%8)
	mask := uint8(1 << (7 - bitOffset))
	wasSet := b.Data[byteIndex]&mask != 0

	if value == 1 {
		b.Data[byteIndex] |= mask
		if !wasSet {
			b.set++
		}
	} else {
		b.Data[byteIndex] &^= mask
		if wasSet {
			b.set--
		}
	}

	return nil
}

func (b *Bitmap) GetBit(index int) (int, error) {
	if index < 0 || index >= int(b.Size) {
		return 0, errors.New("index out of bounds")
	}
	byteIndex, bitOffset := index/8, uint(index%8)

	return int((b.Data[byteIndex] >> (7 - bitOffset)) & 1), nil
}

// Count returns the number of bits set to 1.
func (b *Bitmap) Count() int {
	return int(b.set)
}

func (b *Bitmap) ToByteArray() []byte {
	return b.Data
}
