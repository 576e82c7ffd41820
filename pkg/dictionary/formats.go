package dictionary

import (
	"bytes"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// sniffSize is how much of a file is inspected before loading it.
const sniffSize = 1024

// ValidateFile checks that path names a readable, non-empty text file before
// the loader commits to scanning it. Binary files are refused: a NUL byte in
// the first block means the user pointed at the wrong file. Stray non-ASCII
// lines are left to the loader, which skips them.
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a word list", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("file %s is empty", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	buf := make([]byte, sniffSize)
	n, err := file.Read(buf)
	if err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", path, err)
	}
	buf = buf[:n]

	if bytes.IndexByte(buf, 0) >= 0 {
		return fmt.Errorf("file %s looks binary, expected one word per line", path)
	}

	log.Debugf("Text file %s validated (%d bytes)", path, info.Size())
	return nil
}
