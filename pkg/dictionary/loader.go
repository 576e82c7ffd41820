package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/wordhunt/internal/utils"
	"github.com/charmbracelet/log"
)

// ErrUnavailable means no usable word list could be read. Without one no
// search is possible, so callers treat it as fatal at startup.
var ErrUnavailable = errors.New("dictionary unavailable")

// LoadStats describes what a load kept and what it threw away.
type LoadStats struct {
	Lines      int
	Accepted   int
	Duplicates int
	Skipped    int
	Comments   int
	Took       time.Duration
}

// Load reads a newline-delimited word list from path.
func Load(path string) (*Store, LoadStats, error) {
	if err := ValidateFile(path); err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer file.Close()

	store, stats, err := Read(file)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}
	log.Debugf("Loaded %s: %d words from %d lines (%d skipped, %d duplicates) in %v",
		path, stats.Accepted, stats.Lines, stats.Skipped, stats.Duplicates, stats.Took)
	return store, stats, nil
}

// maxLineBytes bounds a single line. Longer lines cannot be words and are
// skipped without being buffered.
const maxLineBytes = 64 * 1024

// Read builds a Store from r, one word per line. Blank lines, comments,
// over-long lines and lines with anything other than letters are skipped.
// A list in which no line survives is ErrUnavailable.
func Read(r io.Reader) (*Store, LoadStats, error) {
	start := time.Now()
	store := NewStore()
	var stats LoadStats

	reader := bufio.NewReaderSize(r, maxLineBytes)
	for {
		raw, isPrefix, err := reader.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Lines++

		if isPrefix {
			stats.Skipped++
			if err := discardLine(reader); err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, stats, err
			}
			continue
		}

		line := string(raw)
		if utils.IsCommentLine(line) {
			stats.Comments++
			continue
		}
		word, ok := utils.NormalizeWord(line)
		if !ok {
			stats.Skipped++
			continue
		}
		if !store.add(word, stats.Lines) {
			stats.Duplicates++
			continue
		}
		stats.Accepted++
	}
	stats.Took = time.Since(start)

	if stats.Accepted == 0 {
		return nil, stats, fmt.Errorf("%w: no words in %d lines", ErrUnavailable, stats.Lines)
	}
	return store, stats, nil
}

// discardLine consumes the remainder of a line ReadLine returned in part.
func discardLine(reader *bufio.Reader) error {
	for {
		_, isPrefix, err := reader.ReadLine()
		if err != nil {
			return err
		}
		if !isPrefix {
			return nil
		}
	}
}
