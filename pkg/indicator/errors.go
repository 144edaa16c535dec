package indicator

import "github.com/pkg/errors"

var (
	// ErrInvalidParameter is returned by constructors for parameters the
	// formulas cannot work with.
	ErrInvalidParameter = errors.New("invalid indicator parameter")

	ErrUnknownIndicator = errors.New("unknown indicator")
)

func invalidParameter(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}
