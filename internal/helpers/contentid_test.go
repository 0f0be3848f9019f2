package helpers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestContentID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "e3b0c442"},
		{"expression", "hello world", "b94d27b9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ContentID([]byte(tc.in))
			assert.Equal(t, tc.want, got)
			assert.Len(t, got, ContentIDLength)

			fromReader, err := ContentIDReader(strings.NewReader(tc.in))
			require.NoError(t, err)
			assert.Equal(t, got, fromReader)
		})
	}

	t.Run("read error", func(t *testing.T) {
		t.Parallel()
		_, err := ContentIDReader(failingReader{})
		require.EqualError(t, err, "disk gone")
	})
}
