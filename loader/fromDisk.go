package loader

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/robbyt/go-safecalc/internal/helpers"
)

// FromDisk reads expressions from a file each time GetReader is called.
type FromDisk struct {
	path      string
	sourceURL *url.URL
}

// NewFromDisk creates a loader for path. Relative paths are resolved against
// the working directory; a file:// prefix is accepted.
func NewFromDisk(path string) (*FromDisk, error) {
	path = strings.TrimPrefix(path, "file://")

	if strings.Contains(path, "://") {
		return nil, fmt.Errorf("%w: %s", ErrSchemeUnsupported, path)
	}

	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: path is empty", ErrSourceUnavailable)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve path: %w", err)
	}

	if abs == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: path is empty or invalid", ErrSourceUnavailable)
	}

	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}

	return &FromDisk{
		path:      abs,
		sourceURL: u,
	}, nil
}

func (l *FromDisk) String() string {
	noChkSum := fmt.Sprintf("loader.FromDisk{Path: %s}", l.path)

	reader, err := l.GetReader()
	if err != nil {
		return noChkSum
	}
	defer func() { _ = reader.Close() }()

	chksum, err := helpers.ContentIDReader(reader)
	if err != nil {
		return noChkSum
	}

	return fmt.Sprintf("loader.FromDisk{Path: %s, ID: %s}", l.path, chksum)
}

func (l *FromDisk) GetReader() (io.ReadCloser, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return f, nil
}

// GetSourceURL returns the source URL of the file.
func (l *FromDisk) GetSourceURL() *url.URL {
	return l.sourceURL
}
