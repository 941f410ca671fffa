package output

import "io"

// Writer renders the result of one shell command.
type Writer interface {
	Write(w io.Writer, result *Result) error
}
