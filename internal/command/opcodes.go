// Package command interprets UMX frame payloads into typed commands and
// dispatches them to either the text-display engine or directly to the
// panel, according to the controller's current display mode.
package command

const (
	OpParamRequest  byte = 0
	OpSwitchMode    byte = 1
	OpWrite         byte = 2
	OpSetFont       byte = 3
	OpSetColor      byte = 4
	OpSetAnimation  byte = 5
	OpDrawPixel     byte = 6
	OpDrawRow       byte = 7
	OpDrawLine      byte = 8
	OpDrawRectangle byte = 9
	OpDrawTriangle  byte = 10
	OpDrawCircle    byte = 11
	OpClear         byte = 12
	OpEnableOutput  byte = 13
	OpDisableOutput byte = 14
	OpPing          byte = 15
)

// Mode is the controller's current display mode.
type Mode int

const (
	ModeDirect Mode = iota
	ModeText
)
