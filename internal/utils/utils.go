package utils

import "strings"

// BlocksNeeded returns ceil(byteLength / blockSize).
func BlocksNeeded(byteLength, blockSize int) int {
	return (byteLength + blockSize - 1) / blockSize
}

// SplitPath splits a host path at its last separator. Both "/" and "\" are
// accepted so that paths copied from Windows hosts keep working.
func SplitPath(input string) (string, string) {
	index := strings.LastIndexAny(input, `/\`)

	if index == -1 {
		return "", input
	}

	firstPart := input[:index]
	secondPart := input[index+1:]

	return firstPart, secondPart
}
