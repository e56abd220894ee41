//go:build !darwin

package inject

func copyLowLevel() error {
	return ErrUnavailable
}
