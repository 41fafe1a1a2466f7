package launcher

import "errors"

var (
	// ErrCancelled is returned when the user presses ESC/Cancel
	ErrCancelled = errors.New("cancelled by user")

	// ErrNoLauncher is returned when no supported launcher is installed
	ErrNoLauncher = errors.New("no launcher available - please install rofi, fuzzel, dmenu, bemenu or fzf")

	// ErrUnknownLauncher is returned for a launcher name qf does not support
	ErrUnknownLauncher = errors.New("unknown launcher")
)

// IsCancelled checks if the error is from cancel
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
