package utils

import (
	"testing"
)

func TestBlocksNeeded(t *testing.T) {
	tests := []struct {
		byteLength int
		blockSize  int
		expected   int
	}{
		{0, 1024, 0},
		{1, 1024, 1},
		{1024, 1024, 1},
		{1025, 1024, 2},
		{2500, 1024, 3},
		{5000 * 1024, 1024, 5000},
	}

	for _, test := range tests {
		result := BlocksNeeded(test.byteLength, test.blockSize)
		if result != test.expected {
			t.Errorf("For %d bytes with block size %d, expected %d, but got %d", test.byteLength, test.blockSize, test.expected, result)
		}
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		input        string
		pathToFolder string
		fileName     string
	}{
		{"/home/user/document.txt", "/home/user", "document.txt"},
		{"dir1/dir2/file.txt", "dir1/dir2", "file.txt"},
		{`C:\Users\me\notes.txt`, `C:\Users\me`, "notes.txt"},
		{"file", "", "file"},
	}

	for _, test := range tests {
		pathToFolder, fileName := SplitPath(test.input)
		if pathToFolder != test.pathToFolder || fileName != test.fileName {
			t.Errorf("For %s, expected %s and %s, but got %s and %s", test.input, test.pathToFolder, test.fileName, pathToFolder, fileName)
		}
	}
}
