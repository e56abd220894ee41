//go:build !darwin

package inputsource

import "layfix/layout"

type reader struct{}

// newReader returns a stub reader; only macOS exposes the input source.
func newReader() Reader {
	return reader{}
}

func (reader) Current() (layout.Layout, error) {
	return 0, ErrUnknown
}
