/*
Package dictionary reads word lists that extend a language's keyword
dictionary, such as the names of a game engine's API.

Text lists hold one word per line. Blank lines and lines starting with '#'
are skipped, and only the first field of a line is used, so a frequency
column is tolerated. Binary lists start with a little endian int32 word
count followed by, per word, a uint16 byte length, the word bytes and a
uint16 rank. Ranks are read and discarded.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// MaxWords bounds the word count accepted from a binary header.
const MaxWords = 1_000_000

// WordPusher receives loaded words.
type WordPusher interface {
	Push(word string)
}

// WordFunc adapts a function to a WordPusher.
type WordFunc func(word string)

func (f WordFunc) Push(word string) { f(word) }

// Load reads the words of a single word list file.
func Load(filename string) ([]string, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open word list %s", filename)
	}
	defer file.Close()

	var words []string
	switch format {
	case FormatText:
		words, err = ReadText(file)
	case FormatBinary:
		words, err = ReadBinary(file)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read word list %s", filename)
	}
	log.Debugf("Loaded %d words from %s", len(words), filename)
	return words, nil
}

// LoadInto loads path into dst. A directory loads every .txt and .bin file
// in it, in name order. It returns the number of words pushed.
func LoadInto(dst WordPusher, path string) (int, error) {
	files, err := listFiles(path)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, f := range files {
		words, err := Load(f)
		if err != nil {
			return total, err
		}
		for _, w := range words {
			dst.Push(w)
		}
		total += len(words)
	}
	return total, nil
}

func listFiles(path string) ([]string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if !stat.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", path)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".txt", ".bin":
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadText reads a text word list.
func ReadText(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadBinary reads a binary word list.
func ReadBinary(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)

	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	if count < 0 || count > MaxWords {
		return nil, errors.Newf("invalid word count %d", count)
	}

	words := make([]string, 0, count)
	for range count {
		var n uint16
		if err := binary.Read(reader, binary.LittleEndian, &n); err != nil {
			return nil, errors.Wrapf(err, "read length of word %d", len(words))
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, errors.Wrapf(err, "read word %d", len(words))
		}
		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return nil, errors.Wrapf(err, "read rank of %q", buf)
		}
		if n > 0 {
			words = append(words, string(buf))
		}
	}
	return words, nil
}

// WriteBinary encodes words as a binary word list, ranked in order.
func WriteBinary(w io.Writer, words []string) error {
	if len(words) > MaxWords {
		return errors.Newf("too many words: %d", len(words))
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > 0xFFFF {
			return errors.Newf("word %d is too long", i)
		}
		rank := uint16(min(i+1, 0xFFFF))
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}
