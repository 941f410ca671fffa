// Package filesystem is a flat, in-memory file store over a fixed-size region.
//
// The region is split into a directory zone, a metadata zone and a data zone.
// File content lives in data-zone blocks handed out by the space manager; the
// directory and metadata zones mirror the in-memory state after every
// successful mutation and are only read back by Check.
package filesystem

import (
	"fmt"
	"slices"
	"time"

	"virtual-file-system/internal/config"
	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/directory"
	"virtual-file-system/internal/filesystem/directory/record"
	"virtual-file-system/internal/filesystem/managers/blockmanager"
	"virtual-file-system/internal/filesystem/managers/directorymanager"
	"virtual-file-system/internal/filesystem/managers/spacemanager"
	"virtual-file-system/internal/filesystem/superblock"
	"virtual-file-system/internal/logging"
	"virtual-file-system/internal/metrics"
	"virtual-file-system/internal/utils"
)

// allocator is the part of *spacemanager.SpaceManager the file system uses.
type allocator interface {
	Allocate(byteLength int) ([]int, error)
	Release(blocks []int) error
	Usage() float64
	FreeCount() int
	FreshCount() int
	ReleasedCount() int
	BlockCount() int
	Pools() (fresh []int, released []int)
	Encode() []byte
}

type FileSystem struct {
	Superblock       *superblock.Superblock
	disk             *blockmanager.BlockManager
	space            allocator
	directory        *directory.Directory
	directoryManager *directorymanager.DirectoryManager
	threshold        float64
	logger           logging.Logger
	metrics          metrics.Collector
}

type Option func(*FileSystem)

func WithLogger(logger logging.Logger) Option {
	return func(fs *FileSystem) {
		fs.logger = logger
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(fs *FileSystem) {
		fs.metrics = collector
	}
}

// Stats is a snapshot of block and entry accounting.
type Stats struct {
	BlockSize      int     `json:"blockSize"`
	BlockCount     int     `json:"blockCount"`
	FreeBlocks     int     `json:"freeBlocks"`
	FreshBlocks    int     `json:"freshBlocks"`
	ReleasedBlocks int     `json:"releasedBlocks"`
	Entries        int     `json:"entries"`
	MaxEntries     int     `json:"maxEntries"`
	Usage          float64 `json:"usage"`
	Threshold      float64 `json:"threshold"`
}

// FormatFilesystem builds an empty file system with the layout in cfg.
func FormatFilesystem(cfg config.DiskConfig, opts ...Option) (*FileSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fileSystem := FileSystem{
		threshold: cfg.UsageThreshold,
		logger:    logging.NewNopLogger(),
		metrics:   metrics.NewNopCollector(),
	}
	for _, opt := range opts {
		opt(&fileSystem)
	}

	fileSystem.Superblock = superblock.NewSuperblock(
		uint32(cfg.DirectoryZoneSize),
		uint32(cfg.MetadataZoneSize),
		uint32(cfg.DataZoneSize),
		uint32(cfg.BlockSize),
		uint32(cfg.EntrySize),
	)
	fileSystem.disk = blockmanager.NewBlockManager(fileSystem.Superblock)
	fileSystem.space = spacemanager.NewSpaceManager(cfg.BlockCount(), cfg.BlockSize)
	fileSystem.directory = directory.NewDirectory(int(fileSystem.Superblock.MaxEntries))
	fileSystem.directoryManager = directorymanager.NewDirectoryManager(fileSystem.disk, fileSystem.Superblock)

	if err := fileSystem.sync(); err != nil {
		return nil, err
	}

	fileSystem.logger.Info("file system formatted",
		"blocks", fileSystem.Superblock.BlockCount,
		"block_size", fileSystem.Superblock.BlockSize,
		"max_entries", fileSystem.Superblock.MaxEntries,
		"disk_size", fileSystem.Superblock.DiskSize(),
	)

	return &fileSystem, nil
}

// Usage is the fraction of data blocks owned by files.
func (fs *FileSystem) Usage() float64 {
	return fs.space.Usage()
}

func (fs *FileSystem) Stat() Stats {
	return Stats{
		BlockSize:      int(fs.Superblock.BlockSize),
		BlockCount:     fs.space.BlockCount(),
		FreeBlocks:     fs.space.FreeCount(),
		FreshBlocks:    fs.space.FreshCount(),
		ReleasedBlocks: fs.space.ReleasedCount(),
		Entries:        fs.directory.Len(),
		MaxEntries:     fs.directory.MaxEntries(),
		Usage:          fs.space.Usage(),
		Threshold:      fs.threshold,
	}
}

// Bytes returns a copy of the whole region.
func (fs *FileSystem) Bytes() []byte {
	return fs.disk.Bytes()
}

// Check verifies block conservation, record sizing and that the directory and
// metadata zones describe the in-memory state. The first violation found is
// returned wrapped in errs.ErrInconsistent.
func (fs *FileSystem) Check() error {
	if violation := fs.checkBlocks(); violation != "" {
		return fmt.Errorf("%w - %s", errs.ErrInconsistent, violation)
	}
	if violation := fs.checkDirectoryZone(); violation != "" {
		return fmt.Errorf("%w - %s", errs.ErrInconsistent, violation)
	}
	if violation := fs.checkMetadataZone(); violation != "" {
		return fmt.Errorf("%w - %s", errs.ErrInconsistent, violation)
	}
	return nil
}

func (fs *FileSystem) checkBlocks() string {
	blockCount := fs.space.BlockCount()
	owner := make([]string, blockCount)

	claim := func(blockIndex int, who string) string {
		if blockIndex < 0 || blockIndex >= blockCount {
			return fmt.Sprintf("%s holds block %d out of range", who, blockIndex)
		}
		if owner[blockIndex] != "" {
			return fmt.Sprintf("block %d held by %s and %s", blockIndex, owner[blockIndex], who)
		}
		owner[blockIndex] = who
		return ""
	}

	fresh, released := fs.space.Pools()
	for _, blockIndex := range fresh {
		if violation := claim(blockIndex, "fresh pool"); violation != "" {
			return violation
		}
	}
	for _, blockIndex := range released {
		if violation := claim(blockIndex, "released pool"); violation != "" {
			return violation
		}
	}

	blockSize := int(fs.Superblock.BlockSize)
	for _, slot := range fs.directory.Slots() {
		rec := fs.directory.Record(slot)
		if rec.State == record.StateActive && utils.BlocksNeeded(rec.Size, blockSize) != len(rec.Blocks) {
			return fmt.Sprintf("file %q has %d bytes in %d blocks", rec.Name, rec.Size, len(rec.Blocks))
		}
		for _, blockIndex := range rec.Blocks {
			if violation := claim(blockIndex, fmt.Sprintf("file %q", rec.Name)); violation != "" {
				return violation
			}
		}
	}

	for blockIndex, who := range owner {
		if who == "" {
			return fmt.Sprintf("block %d is neither free nor owned", blockIndex)
		}
	}
	return ""
}

func (fs *FileSystem) checkDirectoryZone() string {
	for slot := range int(fs.Superblock.MaxEntries) {
		entry, ok, err := fs.directoryManager.ReadRecord(slot)
		if err != nil {
			return fmt.Sprintf("directory slot %d: %v", slot, err)
		}

		rec := fs.directory.Record(slot)
		switch {
		case rec == nil && ok:
			return fmt.Sprintf("directory slot %d holds %q but is free", slot, entry.Name)
		case rec != nil && !ok:
			return fmt.Sprintf("directory slot %d is empty but holds %q", slot, rec.Name)
		case rec != nil && entry != rec.Entry():
			return fmt.Sprintf("directory slot %d is stale for %q", slot, rec.Name)
		}
	}
	return ""
}

func (fs *FileSystem) checkMetadataZone() string {
	offset := fs.Superblock.MetadataOffset()

	data, err := fs.disk.ReadAt(offset, fs.Superblock.Size())
	if err != nil {
		return err.Error()
	}
	sb, err := superblock.Decode(data)
	if err != nil {
		return err.Error()
	}
	if *sb != *fs.Superblock {
		return "superblock does not match"
	}

	data, err = fs.disk.ReadAt(offset+fs.Superblock.Size(), spacemanager.EncodedSize(fs.space.BlockCount()))
	if err != nil {
		return err.Error()
	}
	storedFresh, storedReleased, err := spacemanager.DecodePools(data)
	if err != nil {
		return err.Error()
	}
	fresh, released := fs.space.Pools()
	if !slices.Equal(storedFresh, fresh) || !slices.Equal(storedReleased, released) {
		return "stored free pools do not match"
	}
	return ""
}

// sync refreshes the superblock counters and writes the superblock and free
// pools into the metadata zone.
func (fs *FileSystem) sync() error {
	fs.Superblock.FreeBlockCount = uint32(fs.space.FreeCount())
	fs.Superblock.EntryCount = uint32(fs.directory.Len())

	offset := fs.Superblock.MetadataOffset()
	if err := fs.disk.WriteAt(fs.Superblock.Encode(), offset); err != nil {
		return err
	}
	if err := fs.disk.WriteAt(fs.space.Encode(), offset+fs.Superblock.Size()); err != nil {
		return err
	}

	fs.metrics.RecordSpace(fs.space.FreeCount(), fs.space.BlockCount(), fs.directory.Len())
	return nil
}

func (fs *FileSystem) observe(operation string, start time.Time, err error) {
	fs.metrics.RecordOperation(operation, time.Since(start), err)
}
