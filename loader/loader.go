// Package loader provides expression sources for batch evaluation: inline
// strings, files on disk, and arbitrary readers such as stdin.
package loader

import (
	"io"
	"net/url"
)

// Loader supplies expression text and a URL naming where it came from.
type Loader interface {
	GetReader() (io.ReadCloser, error)
	GetSourceURL() *url.URL
}
