package loader

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/robbyt/go-safecalc/internal/helpers"
)

// FromExpression is a Loader for one expression given inline, such as the
// arguments of the eval command. Its content is a single expression even
// when it spans several lines.
type FromExpression struct {
	text      string
	sourceURL *url.URL
}

// NewFromExpression joins parts with single spaces and trims the result.
// Empty content is accepted; evaluating it reports empty input.
func NewFromExpression(parts ...string) (*FromExpression, error) {
	text := strings.TrimSpace(strings.Join(parts, " "))

	u, err := url.Parse("expr://inline/" + helpers.ContentID([]byte(text)))
	if err != nil {
		return nil, fmt.Errorf("failed to create source URL: %w", err)
	}

	return &FromExpression{text: text, sourceURL: u}, nil
}

func (l *FromExpression) String() string {
	return fmt.Sprintf("loader.FromExpression{%q}", l.text)
}

func (l *FromExpression) GetReader() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(l.text)), nil
}

func (l *FromExpression) GetSourceURL() *url.URL {
	return l.sourceURL
}

// Expression returns the whole content as one Line with no line number.
func (l *FromExpression) Expression() Line {
	return Line{Text: l.text}
}
