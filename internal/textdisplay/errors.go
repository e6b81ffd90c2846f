package textdisplay

import "errors"

// ErrRowOutOfRange is returned by any row-indexed operation when row is not
// in [0, NumRows).
var ErrRowOutOfRange = errors.New("textdisplay: row out of range")

// ErrInvalidSetting is returned when a wire value (font ID, animation
// kind) doesn't match any known variant.
var ErrInvalidSetting = errors.New("textdisplay: invalid setting")
