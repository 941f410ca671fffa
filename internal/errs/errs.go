package errs

import (
	"errors"
	"fmt"
)

var ErrMissingArguments = fmt.Errorf("missing arguments")
var ErrUnknownArguments = fmt.Errorf("unknown arguments")
var ErrIncorrectFileName = fmt.Errorf("incorrect file name")
var ErrUnknownCommand = fmt.Errorf("unknown command")
var ErrRecordAlreadyExists = fmt.Errorf("record with this name already exists")
var ErrIllegalArgument = fmt.Errorf("illegal argument")
var ErrRecordNotFound = fmt.Errorf("record not found")
var ErrInvalidIndex = fmt.Errorf("invalid index")
var ErrCapacityExceeded = fmt.Errorf("disk full or usage threshold reached")
var ErrInsufficientSpace = fmt.Errorf("not enough free blocks")
var ErrInconsistent = fmt.Errorf("record has no valid backing storage")

// Machine-readable codes in CATEGORY.SPECIFIC form, used by the JSON output.
const (
	CodeNameConflict      = "FS.NAME_CONFLICT"
	CodeCapacityExceeded  = "FS.CAPACITY_EXCEEDED"
	CodeInsufficientSpace = "FS.INSUFFICIENT_SPACE"
	CodeInvalidIndex      = "FS.INVALID_INDEX"
	CodeNameNotFound      = "FS.NAME_NOT_FOUND"
	CodeInconsistent      = "FS.INCONSISTENT"
	CodeIncorrectName     = "FS.INCORRECT_NAME"
	CodeIllegalArgument   = "FS.ILLEGAL_ARGUMENT"
	CodeMissingArguments  = "COMMAND.MISSING_ARGUMENTS"
	CodeUnknownArguments  = "COMMAND.UNKNOWN_ARGUMENTS"
	CodeUnknownCommand    = "COMMAND.NOT_FOUND"
	CodeInternal          = "INTERNAL.ERROR"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrRecordAlreadyExists, CodeNameConflict},
	{ErrCapacityExceeded, CodeCapacityExceeded},
	{ErrInsufficientSpace, CodeInsufficientSpace},
	{ErrInvalidIndex, CodeInvalidIndex},
	{ErrRecordNotFound, CodeNameNotFound},
	{ErrInconsistent, CodeInconsistent},
	{ErrIncorrectFileName, CodeIncorrectName},
	{ErrIllegalArgument, CodeIllegalArgument},
	{ErrMissingArguments, CodeMissingArguments},
	{ErrUnknownArguments, CodeUnknownArguments},
	{ErrUnknownCommand, CodeUnknownCommand},
}

// Code returns the code of the first sentinel err wraps, or CodeInternal.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}
