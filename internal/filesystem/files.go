package filesystem

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"time"

	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem/directory/record"
)

// Ref identifies a file either by name or by its 1-based position in the
// listing.
type Ref struct {
	name     string
	position int
}

func ByName(name string) Ref {
	return Ref{name: name}
}

func ByPosition(position int) Ref {
	return Ref{position: position}
}

func (r Ref) String() string {
	if r.name != "" {
		return r.name
	}
	return "#" + strconv.Itoa(r.position)
}

// Entry describes one file in a listing.
type Entry struct {
	Position int          `json:"position"`
	Name     string       `json:"name"`
	Size     int          `json:"size"`
	Blocks   []int        `json:"blocks"`
	State    record.State `json:"state"`
}

func (fs *FileSystem) resolve(ref Ref) (int, *record.Record, error) {
	if ref.name != "" {
		return fs.directory.Lookup(ref.name)
	}
	return fs.directory.At(ref.position)
}

// CanCreate reports whether CreateFile would accept name before any content
// is produced. It checks the name, the entry table and the usage threshold.
func (fs *FileSystem) CanCreate(name string) error {
	if err := record.ValidateName(name, int(fs.Superblock.EntrySize)); err != nil {
		return err
	}
	if fs.directory.Contains(name) {
		return fmt.Errorf("%w - %s", errs.ErrRecordAlreadyExists, name)
	}
	if fs.directory.Full() {
		return fmt.Errorf("%w - %d entries", errs.ErrCapacityExceeded, fs.directory.MaxEntries())
	}
	if usage := fs.space.Usage(); usage > fs.threshold {
		return fmt.Errorf("%w - usage %.4f above %.2f", errs.ErrCapacityExceeded, usage, fs.threshold)
	}
	return nil
}

// CreateFile stores content under a new name. Creation is refused once the
// entry table is full or usage is above the threshold, even if the file would
// fit.
func (fs *FileSystem) CreateFile(name string, content []byte) (err error) {
	start := time.Now()
	defer func() { fs.observe("create", start, err) }()

	if err := fs.CanCreate(name); err != nil {
		return err
	}

	blocks, err := fs.space.Allocate(len(content))
	if err != nil {
		// a failed allocation still moves blocks between the pools
		return errors.Join(err, fs.sync())
	}
	if err := fs.disk.WriteBlocks(blocks, content); err != nil {
		return fs.undoCreate(-1, blocks, err)
	}

	rec := record.NewRecord(name, blocks, len(content))
	slot, err := fs.directory.AddFile(rec)
	if err != nil {
		return fs.undoCreate(-1, blocks, err)
	}
	if err := fs.directoryManager.SaveRecord(slot, rec); err != nil {
		return fs.undoCreate(slot, blocks, err)
	}
	if err := fs.sync(); err != nil {
		return fs.undoCreate(slot, blocks, err)
	}

	fs.logger.Debug("file created", "name", name, "size", len(content), "blocks", blocks)
	return nil
}

func (fs *FileSystem) ReadFile(ref Ref) (content []byte, err error) {
	start := time.Now()
	defer func() { fs.observe("read", start, err) }()

	_, rec, err := fs.resolve(ref)
	if err != nil {
		return nil, err
	}
	if rec.State == record.StateInconsistent {
		return nil, fmt.Errorf("%w - %s", errs.ErrInconsistent, rec.Name)
	}

	return fs.disk.ReadBlocks(rec.Blocks, rec.Size)
}

// EditFile replaces the content of a file. The old blocks are released before
// the new ones are allocated. If the new content does not fit the old content
// is written back into freshly allocated blocks and errs.ErrInsufficientSpace
// is returned. If even that fails the record is left without blocks in
// record.StateInconsistent and errs.ErrInconsistent is returned.
func (fs *FileSystem) EditFile(ref Ref, content []byte) (err error) {
	start := time.Now()
	defer func() { fs.observe("modify", start, err) }()

	slot, rec, err := fs.resolve(ref)
	if err != nil {
		return err
	}
	if rec.State == record.StateInconsistent {
		return fmt.Errorf("%w - %s", errs.ErrInconsistent, rec.Name)
	}

	old, err := fs.disk.ReadBlocks(rec.Blocks, rec.Size)
	if err != nil {
		return err
	}
	if err := fs.disk.ResetBlocks(rec.Blocks); err != nil {
		return err
	}
	if err := fs.space.Release(rec.Blocks); err != nil {
		return err
	}

	blocks, allocErr := fs.space.Allocate(len(content))
	if allocErr == nil {
		if allocErr = fs.disk.WriteBlocks(blocks, content); allocErr == nil {
			rec.Blocks = blocks
			rec.Size = len(content)
			return fs.save(slot, rec)
		}
		allocErr = errors.Join(allocErr, fs.space.Release(blocks))
	}

	fs.logger.Warn("file does not fit, restoring previous content",
		"name", rec.Name, "size", len(content), "free_blocks", fs.space.FreeCount())

	restored, restoreErr := fs.space.Allocate(len(old))
	if restoreErr == nil {
		if restoreErr = fs.disk.WriteBlocks(restored, old); restoreErr == nil {
			rec.Blocks = restored
			return errors.Join(allocErr, fs.save(slot, rec))
		}
		restoreErr = errors.Join(restoreErr, fs.space.Release(restored))
	}

	fs.logger.Error("file lost its blocks",
		"name", rec.Name, "size", rec.Size, "error", restoreErr)

	rec.State = record.StateInconsistent
	rec.Blocks = nil
	rec.Size = 0
	if err := fs.save(slot, rec); err != nil {
		return err
	}
	return fmt.Errorf("%w - %s", errs.ErrInconsistent, errors.Join(allocErr, restoreErr))
}

// DeleteFile zeroes and releases the blocks of a file and frees its entry.
func (fs *FileSystem) DeleteFile(ref Ref) (err error) {
	start := time.Now()
	defer func() { fs.observe("delete", start, err) }()

	slot, rec, err := fs.resolve(ref)
	if err != nil {
		return err
	}

	if rec.State == record.StateActive {
		if err := fs.disk.ResetBlocks(rec.Blocks); err != nil {
			return err
		}
		if err := fs.space.Release(rec.Blocks); err != nil {
			return err
		}
	}

	fs.directory.DeleteFile(slot)
	if err := fs.directoryManager.ResetRecord(slot); err != nil {
		return err
	}
	if err := fs.sync(); err != nil {
		return err
	}

	fs.logger.Debug("file deleted", "name", rec.Name, "blocks", rec.Blocks)
	return nil
}

// List yields the files in creation order as they were when List was called.
// The returned sequence can be ranged over more than once.
func (fs *FileSystem) List() iter.Seq[Entry] {
	slots := fs.directory.Slots()
	snapshot := make([]Entry, 0, len(slots))
	for i, slot := range slots {
		rec := fs.directory.Record(slot)
		snapshot = append(snapshot, Entry{
			Position: i + 1,
			Name:     rec.Name,
			Size:     rec.Size,
			Blocks:   slices.Clone(rec.Blocks),
			State:    rec.State,
		})
	}

	return func(yield func(Entry) bool) {
		for _, entry := range snapshot {
			if !yield(entry) {
				return
			}
		}
	}
}

// Info describes a single file the way List does.
func (fs *FileSystem) Info(ref Ref) (Entry, error) {
	_, rec, err := fs.resolve(ref)
	if err != nil {
		return Entry{}, err
	}
	for entry := range fs.List() {
		if entry.Name == rec.Name {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("%w - %s", errs.ErrRecordNotFound, rec.Name)
}

// undoCreate returns what a failed create took and mirrors the result. slot is
// negative when no entry was added. Every undo error is joined to cause.
func (fs *FileSystem) undoCreate(slot int, blocks []int, cause error) error {
	undo := []error{cause}
	if slot >= 0 {
		fs.directory.DeleteFile(slot)
		undo = append(undo, fs.directoryManager.ResetRecord(slot))
	}
	undo = append(undo,
		fs.disk.ResetBlocks(blocks),
		fs.space.Release(blocks),
		fs.sync(),
	)

	err := errors.Join(undo...)
	fs.logger.Warn("create rolled back", "blocks", blocks, "error", err)
	return err
}

func (fs *FileSystem) save(slot int, rec *record.Record) error {
	if err := fs.directoryManager.SaveRecord(slot, rec); err != nil {
		return err
	}
	return fs.sync()
}
