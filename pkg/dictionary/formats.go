package dictionary

import (
	"os"

	"github.com/bastiangx/snipserve/internal/utils"
	"github.com/cockroachdb/errors"
)

// FileFormat is the encoding of a word list file.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // one word per line
	FormatBinary             // length prefixed words with a count header
)

// FormatInfo describes a supported format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extension   string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extension:   "txt",
		MinSize:     1,
	},
	FormatBinary: {
		Format:      FormatBinary,
		Description: "Binary Word List",
		Extension:   "bin",
		MinSize:     4, // word count header
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFileFormat picks the format of filename from its extension and
// checks the file is large enough to hold it.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := utils.Ext(filename)
	for format, info := range supportedFormats {
		if info.Extension != ext {
			continue
		}
		if err := validateSize(filename, info); err != nil {
			return FormatUnknown, err
		}
		return format, nil
	}
	return FormatUnknown, errors.WithHint(
		errors.Newf("unsupported word list %s", filename),
		"word lists are .txt (one word per line) or .bin files",
	)
}

func validateSize(filename string, info FormatInfo) error {
	stat, err := os.Stat(filename)
	if err != nil {
		return errors.Wrapf(err, "stat %s", filename)
	}
	if stat.Size() < info.MinSize {
		return errors.Newf("file %s is too small (%d bytes) for %s", filename, stat.Size(), info.Description)
	}
	return nil
}
