// Package output renders shell command results as text or JSON.
package output

import (
	"virtual-file-system/internal/errs"
	"virtual-file-system/internal/filesystem"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const APIVersion = "v1"

type Result struct {
	Status   string     `json:"status"`
	Command  string     `json:"command"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Metadata *Metadata  `json:"metadata,omitempty"`
}

// ErrorInfo carries a machine-readable code such as "FS.NAME_CONFLICT" and
// the error text.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Metadata struct {
	DurationMs int64  `json:"duration_ms"`
	TraceID    string `json:"trace_id,omitempty"`
	APIVersion string `json:"api_version"`
}

// Listing is the payload of the list command.
type Listing struct {
	Files []filesystem.Entry `json:"files"`
}

// FileContent is the payload of the read command.
type FileContent struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}

// Message is a plain confirmation such as "file created".
type Message struct {
	Text string `json:"message"`
}

func NewSuccess(command string, data any) *Result {
	return &Result{
		Status:  StatusSuccess,
		Command: command,
		Data:    data,
	}
}

func NewError(command string, err error) *Result {
	return &Result{
		Status:  StatusError,
		Command: command,
		Error: &ErrorInfo{
			Code:    errs.Code(err),
			Message: err.Error(),
		},
	}
}
