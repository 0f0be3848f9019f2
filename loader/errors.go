package loader

import "errors"

var (
	ErrSchemeUnsupported = errors.New("unsupported scheme")
	ErrSourceUnavailable = errors.New("expression source not available")
)
