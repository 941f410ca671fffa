package menu

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"virtual-file-system/internal/errs"
)

// ContentProvider supplies the bytes for create and edit when they are not
// given on the command line. current is nil for a new file.
type ContentProvider interface {
	Content(ctx context.Context, name string, current []byte) ([]byte, error)
}

type ContentFunc func(ctx context.Context, name string, current []byte) ([]byte, error)

func (f ContentFunc) Content(ctx context.Context, name string, current []byte) ([]byte, error) {
	return f(ctx, name, current)
}

// NoContent refuses to supply content, so create and edit need it inline.
var NoContent = ContentFunc(func(_ context.Context, name string, _ []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w - content for %s", errs.ErrMissingArguments, name)
})

// EditorContent opens the current content in an external editor and returns
// what was saved. Editor is a command line such as "vi" or "code --wait".
type EditorContent struct {
	Editor string
}

func NewEditorContent(editor string) *EditorContent {
	return &EditorContent{Editor: editor}
}

func (e *EditorContent) Content(ctx context.Context, name string, current []byte) ([]byte, error) {
	command := parseCommandLine(e.Editor)
	if len(command) == 0 {
		return nil, fmt.Errorf("%w - no editor configured", errs.ErrMissingArguments)
	}

	file, err := os.CreateTemp("", "vfs-*.txt")
	if err != nil {
		return nil, err
	}
	path := file.Name()
	defer os.Remove(path)

	if _, err := file.Write(current); err != nil {
		file.Close()
		return nil, err
	}
	if err := file.Close(); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, command[0], append(command[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor for %s: %w", name, err)
	}

	return os.ReadFile(path)
}
