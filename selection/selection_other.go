//go:build !darwin

package selection

type accessor struct{}

// newAccessor returns a stub; off macOS only the clipboard path exists.
func newAccessor() Accessor {
	return accessor{}
}

func (accessor) ReadSelected() (string, error) {
	return "", ErrUnavailable
}

func (accessor) WriteSelected(string) error {
	return ErrUnavailable
}
