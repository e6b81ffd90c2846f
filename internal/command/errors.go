package command

// DisplayError is the fixed five-member error taxonomy returned to the
// host as the response body on failure. Every member carries exactly one
// literal ASCII message; there is no dynamic error text anywhere in the
// protocol.
type DisplayError struct {
	message string
}

func (e *DisplayError) Error() string { return e.message }

var (
	OutOfBounds    = &DisplayError{"Index out of Bounds"}
	IncorrectMode  = &DisplayError{"Incorrect Mode"}
	InvalidSetting = &DisplayError{"Invalid Setting"}
	InvalidCommand = &DisplayError{"Invalid Command"}
	DrawError      = &DisplayError{"Drawing Error"}
)
