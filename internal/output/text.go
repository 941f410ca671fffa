package output

import (
	"encoding/json"
	"fmt"
	"io"

	"virtual-file-system/internal/filesystem"
	"virtual-file-system/internal/filesystem/directory/record"
)

// TextWriter prints results the way an interactive shell expects: bare
// content for reads, one numbered line per file for listings.
type TextWriter struct{}

func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

func (t *TextWriter) Write(w io.Writer, result *Result) error {
	if result == nil {
		return nil
	}

	if result.Error != nil {
		_, err := fmt.Fprintf(w, "Error [%s]: %s\n", result.Error.Code, result.Error.Message)
		return err
	}

	switch data := result.Data.(type) {
	case nil:
		return nil
	case Message:
		_, err := fmt.Fprintln(w, data.Text)
		return err
	case FileContent:
		_, err := fmt.Fprintln(w, data.Content)
		return err
	case Listing:
		return writeListing(w, data)
	case filesystem.Stats:
		return writeStats(w, data)
	default:
		dataJSON, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s data: %w", result.Command, err)
		}
		_, err = fmt.Fprintf(w, "%s\n", dataJSON)
		return err
	}
}

func writeListing(w io.Writer, listing Listing) error {
	if len(listing.Files) == 0 {
		_, err := fmt.Fprintln(w, "no files")
		return err
	}

	for _, file := range listing.Files {
		line := fmt.Sprintf("%d. %s (%d bytes)", file.Position, file.Name, file.Size)
		if file.State == record.StateInconsistent {
			line += " [inconsistent]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeStats(w io.Writer, stats filesystem.Stats) error {
	_, err := fmt.Fprintf(w,
		"block size:      %d\n"+
			"blocks:          %d\n"+
			"free blocks:     %d (fresh %d, released %d)\n"+
			"entries:         %d / %d\n"+
			"usage:           %.4f (threshold %.2f)\n",
		stats.BlockSize,
		stats.BlockCount,
		stats.FreeBlocks, stats.FreshBlocks, stats.ReleasedBlocks,
		stats.Entries, stats.MaxEntries,
		stats.Usage, stats.Threshold,
	)
	return err
}
