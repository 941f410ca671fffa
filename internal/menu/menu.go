// Package menu is the interactive shell over a file system.
package menu

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"virtual-file-system/internal/config"
	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem"
	"virtual-file-system/internal/logging"
	"virtual-file-system/internal/output"
	"virtual-file-system/internal/tracing"
	"virtual-file-system/internal/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const prompt = "vfs> "

const helpText = `create <name> [content]   create a file, content from the editor if omitted
edit <file> [content]     replace the content of a file
read <file>               print a file
delete <file>             delete a file
list                      list files in creation order
import <host path> [name] copy a host file in
export <file> <host path> copy a file out to the host
stat                      show block and entry usage
check                     verify internal consistency
config                    print the effective configuration
format                    discard everything and start over
exit                      leave the shell
<file> is a name or a position from list.`

// FormatFunc builds a fresh file system for the format command.
type FormatFunc func() (*filesystem.FileSystem, error)

type Menu struct {
	fileSystem *filesystem.FileSystem
	writer     output.Writer
	format     FormatFunc
	cfg        *config.Config
	content    ContentProvider
	in         *bufio.Scanner
	out        io.Writer
	logger     logging.Logger
	tracer     trace.Tracer
}

type Option func(*Menu)

func WithInput(r io.Reader) Option {
	return func(m *Menu) {
		m.in = bufio.NewScanner(r)
	}
}

func WithOutput(w io.Writer) Option {
	return func(m *Menu) {
		m.out = w
	}
}

func WithContentProvider(content ContentProvider) Option {
	return func(m *Menu) {
		m.content = content
	}
}

func WithFormatter(format FormatFunc) Option {
	return func(m *Menu) {
		m.format = format
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(m *Menu) {
		m.cfg = cfg
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(m *Menu) {
		m.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(m *Menu) {
		m.tracer = tracer
	}
}

func NewMenu(fileSystem *filesystem.FileSystem, writer output.Writer, opts ...Option) *Menu {
	m := &Menu{
		fileSystem: fileSystem,
		writer:     writer,
		cfg:        config.Default(),
		content:    NoContent,
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
		logger:     logging.NewNopLogger(),
		tracer:     tracing.Tracer(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.format == nil {
		m.format = func() (*filesystem.FileSystem, error) {
			return filesystem.FormatFilesystem(m.cfg.Disk, filesystem.WithLogger(m.logger))
		}
	}
	return m
}

// FileSystem returns the file system currently served, which changes after
// format.
func (m *Menu) FileSystem() *filesystem.FileSystem {
	return m.fileSystem
}

// Start reads commands until exit or end of input.
func (m *Menu) Start(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, prompt)
		if !m.in.Scan() {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}

		parts := parseCommandLine(m.in.Text())
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "exit" {
			fmt.Fprintln(m.out, "File system closed.")
			return nil
		}

		m.run(ctx, parts[0], parts[1:])
	}
}

func (m *Menu) run(ctx context.Context, command string, args []string) {
	ctx, span := m.tracer.Start(ctx, "vfs."+command, trace.WithAttributes(
		attribute.String("vfs.command", command),
		attribute.Int("vfs.args", len(args)),
	))
	defer span.End()

	start := time.Now()
	data, err := m.executeCommand(ctx, command, args)

	var result *output.Result
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errs.Code(err))
		m.logger.Debug("command failed", "command", command, "error", err)
		result = output.NewError(command, err)
	} else {
		result = output.NewSuccess(command, data)
	}

	result.Metadata = &output.Metadata{
		DurationMs: time.Since(start).Milliseconds(),
		APIVersion: output.APIVersion,
	}
	if spanContext := span.SpanContext(); spanContext.HasTraceID() {
		result.Metadata.TraceID = spanContext.TraceID().String()
	}

	if err := m.writer.Write(m.out, result); err != nil {
		m.logger.Error("write result", "command", command, "error", err)
	}
}

func (m *Menu) executeCommand(ctx context.Context, command string, args []string) (any, error) {
	switch command {
	case "create":
		if err := checkArgs(command, args, 1, 2); err != nil {
			return nil, err
		}
		fileName := args[0]
		if _, base := utils.SplitPath(fileName); base != fileName {
			return nil, fmt.Errorf("%w - %s: directories are not supported", errs.ErrIncorrectFileName, fileName)
		}

		if err := m.fileSystem.CanCreate(fileName); err != nil {
			return nil, err
		}

		var content []byte
		if len(args) > 1 {
			content = []byte(args[1])
		} else {
			var err error
			content, err = m.content.Content(ctx, fileName, nil)
			if err != nil {
				return nil, err
			}
		}
		if err := m.fileSystem.CreateFile(fileName, content); err != nil {
			return nil, err
		}
		return output.Message{Text: fmt.Sprintf("created %s (%d bytes)", fileName, len(content))}, nil
	case "edit":
		if err := checkArgs(command, args, 1, 2); err != nil {
			return nil, err
		}
		ref := ParseRef(args[0])

		var content []byte
		if len(args) > 1 {
			content = []byte(args[1])
		} else {
			current, err := m.fileSystem.ReadFile(ref)
			if err != nil {
				return nil, err
			}
			content, err = m.content.Content(ctx, ref.String(), current)
			if err != nil {
				return nil, err
			}
		}
		if err := m.fileSystem.EditFile(ref, content); err != nil {
			return nil, err
		}
		return output.Message{Text: fmt.Sprintf("saved %s (%d bytes)", ref, len(content))}, nil
	case "read":
		if err := checkArgs(command, args, 1, 1); err != nil {
			return nil, err
		}
		return m.readFile(ParseRef(args[0]))
	case "delete":
		if err := checkArgs(command, args, 1, 1); err != nil {
			return nil, err
		}
		ref := ParseRef(args[0])
		if err := m.fileSystem.DeleteFile(ref); err != nil {
			return nil, err
		}
		return output.Message{Text: fmt.Sprintf("deleted %s", ref)}, nil
	case "list":
		if err := checkArgs(command, args, 0, 0); err != nil {
			return nil, err
		}
		return output.Listing{Files: slices.Collect(m.fileSystem.List())}, nil
	case "import":
		if err := checkArgs(command, args, 1, 2); err != nil {
			return nil, err
		}
		hostPath := args[0]
		_, fileName := utils.SplitPath(hostPath)
		if len(args) > 1 {
			fileName = args[1]
		}

		if err := m.fileSystem.CanCreate(fileName); err != nil {
			return nil, err
		}
		content, err := os.ReadFile(hostPath)
		if err != nil {
			return nil, err
		}
		if err := m.fileSystem.CreateFile(fileName, content); err != nil {
			return nil, err
		}
		return output.Message{Text: fmt.Sprintf("imported %s as %s (%d bytes)", hostPath, fileName, len(content))}, nil
	case "export":
		if err := checkArgs(command, args, 2, 2); err != nil {
			return nil, err
		}
		content, err := m.fileSystem.ReadFile(ParseRef(args[0]))
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(args[1], content, 0o644); err != nil {
			return nil, err
		}
		return output.Message{Text: fmt.Sprintf("exported %d bytes to %s", len(content), args[1])}, nil
	case "stat":
		if err := checkArgs(command, args, 0, 0); err != nil {
			return nil, err
		}
		return m.fileSystem.Stat(), nil
	case "check":
		if err := checkArgs(command, args, 0, 0); err != nil {
			return nil, err
		}
		if err := m.fileSystem.Check(); err != nil {
			return nil, err
		}
		return output.Message{Text: "file system is consistent"}, nil
	case "config":
		if err := checkArgs(command, args, 0, 0); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := m.cfg.WriteYAML(&buf); err != nil {
			return nil, err
		}
		return output.Message{Text: strings.TrimRight(buf.String(), "\n")}, nil
	case "format":
		if err := checkArgs(command, args, 0, 0); err != nil {
			return nil, err
		}
		if !m.getYesOrNo("Format the file system? All data will be lost (y/n): ") {
			return output.Message{Text: "format cancelled"}, nil
		}
		fileSystem, err := m.format()
		if err != nil {
			return nil, err
		}
		m.fileSystem = fileSystem
		m.logger.Info("file system formatted by user")
		return output.Message{Text: "file system formatted"}, nil
	case "help":
		return output.Message{Text: helpText}, nil
	default:
		return nil, fmt.Errorf("%w - %s", errs.ErrUnknownCommand, command)
	}
}

func (m *Menu) readFile(ref filesystem.Ref) (any, error) {
	content, err := m.fileSystem.ReadFile(ref)
	if err != nil {
		return nil, err
	}
	info, err := m.fileSystem.Info(ref)
	if err != nil {
		return nil, err
	}
	return output.FileContent{Name: info.Name, Size: len(content), Content: string(content)}, nil
}

func checkArgs(command string, args []string, minArgs, maxArgs int) error {
	if len(args) < minArgs {
		return fmt.Errorf("%w - %s", errs.ErrMissingArguments, command)
	}
	if len(args) > maxArgs {
		return fmt.Errorf("%w - %s", errs.ErrUnknownArguments, strings.Join(args[maxArgs:], " "))
	}
	return nil
}

// ParseRef reads a file argument. A decimal number is a 1-based position,
// anything else is a name.
func ParseRef(arg string) filesystem.Ref {
	if position, err := strconv.Atoi(arg); err == nil {
		return filesystem.ByPosition(position)
	}
	return filesystem.ByName(arg)
}

func parseCommandLine(command string) []string {
	var args []string
	state := "start"
	current := ""
	quote := "\""
	escapeNext := false
	for _, c := range command {
		if state == "quotes" {
			if string(c) != quote {
				current += string(c)
			} else {
				args = append(args, current)
				current = ""
				state = "start"
			}
			continue
		}
		if escapeNext {
			current += string(c)
			escapeNext = false
			state = "arg"
			continue
		}
		if c == '\\' {
			escapeNext = true
			continue
		}
		if c == '"' || c == '\'' {
			state = "quotes"
			quote = string(c)
			continue
		}
		if state == "arg" {
			if c == ' ' || c == '\t' {
				args = append(args, current)
				current = ""
				state = "start"
			} else {
				current += string(c)
			}
			continue
		}
		if c != ' ' && c != '\t' {
			state = "arg"
			current += string(c)
		}
	}
	if current != "" || state == "quotes" {
		args = append(args, current)
	}
	return args
}

func (m *Menu) getYesOrNo(question string) bool {
	for {
		fmt.Fprint(m.out, question)
		if !m.in.Scan() {
			return false
		}
		input := strings.ToLower(strings.TrimSpace(m.in.Text()))

		if input == "y" {
			return true
		} else if input == "n" {
			return false
		}
		fmt.Fprintln(m.out, "Invalid input, please try again.")
	}
}
