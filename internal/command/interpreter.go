package command

import (
	"bytes"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/umx75/controller/internal/drawtarget"
	"github.com/umx75/controller/internal/panel"
	"github.com/umx75/controller/internal/textdisplay"
)

// Executor parses UMX payloads into typed commands and applies them to
// either the text-display engine or directly to the panel, according to
// the controller's current display mode. One Executor is shared by every
// transport (UART, USB-CDC); Handle, Tick, and Render all take the same
// lock, serializing compound engine/mode mutations the way the panel
// buffer's own mutex serializes draws against the scan loop.
type Executor struct {
	mu     sync.Mutex
	mode   Mode
	engine *textdisplay.Engine

	driver *panel.Driver
	canvas *drawtarget.Canvas
	width  int

	outputEnabled  atomic.Bool
	clearRequested atomic.Bool
}

// NewExecutor wires an executor to driver. The controller powers on in
// DirectMode with output enabled.
func NewExecutor(driver *panel.Driver) *Executor {
	w, _ := driver.Size()
	e := &Executor{
		mode:   ModeDirect,
		driver: driver,
		canvas: drawtarget.NewCanvas(driver),
		width:  w,
	}
	e.outputEnabled.Store(true)
	return e
}

// Mode reports the current display mode.
func (e *Executor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// OutputEnabled reports whether the scan loop should call panel.Output.
func (e *Executor) OutputEnabled() bool {
	return e.outputEnabled.Load()
}

// ConsumeClearRequest reports and clears a pending deferred-clear request
// raised by SwitchMode. The orchestrator calls this once per main-loop
// iteration.
func (e *Executor) ConsumeClearRequest() bool {
	return e.clearRequested.CompareAndSwap(true, false)
}

// Tick advances the active text engine's animation state by one step.
// No-op outside TextMode.
func (e *Executor) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == ModeText && e.engine != nil {
		e.engine.Tick()
	}
}

// Render rasterizes the active text engine into the panel buffer. No-op
// outside TextMode.
func (e *Executor) Render() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mode == ModeText && e.engine != nil {
		e.engine.Render(e.canvas)
	}
}

// Handle parses and applies one complete UMX payload, returning the
// opcode (echoed in the response frame) and the response body. It never
// returns a Go error: failures are mapped to one of the five fixed
// DisplayError messages, which go back to the host verbatim.
func (e *Executor) Handle(payload []byte) (opcode byte, response []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(payload) == 0 {
		return 0, []byte(InvalidCommand.Error())
	}
	opcode = payload[0]
	body, err := e.dispatch(opcode, payload[1:])
	if err != nil {
		return opcode, []byte(err.Error())
	}
	return opcode, []byte(body)
}

func (e *Executor) dispatch(opcode byte, params []byte) (string, error) {
	switch opcode {
	case OpParamRequest:
		return e.modeString(), nil
	case OpSwitchMode:
		return e.switchMode(params)
	case OpWrite:
		return e.write(params)
	case OpSetFont:
		return e.setFont(params)
	case OpSetColor:
		return e.setColor(params)
	case OpSetAnimation:
		return e.setAnimation(params)
	case OpDrawPixel:
		return e.drawPixel(params)
	case OpDrawRow:
		return e.drawRow(params)
	case OpDrawLine:
		return e.drawLine(params)
	case OpDrawRectangle:
		return e.drawRectangle(params)
	case OpDrawTriangle:
		return e.drawTriangle(params)
	case OpDrawCircle:
		return e.drawCircle(params)
	case OpClear:
		return e.clear()
	case OpEnableOutput:
		e.outputEnabled.Store(true)
		return "OK", nil
	case OpDisableOutput:
		e.outputEnabled.Store(false)
		return "OK", nil
	case OpPing:
		return "Pong", nil
	default:
		return "", InvalidCommand
	}
}

func (e *Executor) modeString() string {
	if e.mode == ModeText {
		return "Mode:Text"
	}
	return "Mode:Direct"
}

func (e *Executor) requireMode(want Mode) error {
	if e.mode != want {
		return IncorrectMode
	}
	return nil
}

func (e *Executor) switchMode(params []byte) (string, error) {
	if len(params) < 1 {
		return "", InvalidCommand
	}
	switch params[0] {
	case 0:
		e.mode = ModeText
		e.engine = textdisplay.NewEngine()
	case 1:
		e.mode = ModeDirect
		e.engine = nil
	default:
		return "", InvalidCommand
	}
	e.clearRequested.Store(true)
	return "OK", nil
}

func (e *Executor) write(params []byte) (string, error) {
	if err := e.requireMode(ModeText); err != nil {
		return "", err
	}
	if len(params) < 1 {
		return "", InvalidCommand
	}
	row := params[0]
	rest := params[1:]
	text := rest
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		text = rest[:i]
	}
	if err := e.engine.Write(int(row), string(text)); err != nil {
		return "", mapTextErr(err)
	}
	return "OK", nil
}

func (e *Executor) setFont(params []byte) (string, error) {
	if err := e.requireMode(ModeText); err != nil {
		return "", err
	}
	if len(params) < 2 {
		return "", InvalidCommand
	}
	if err := e.engine.SetFont(int(params[0]), params[1]); err != nil {
		return "", mapTextErr(err)
	}
	return "OK", nil
}

func (e *Executor) setColor(params []byte) (string, error) {
	if err := e.requireMode(ModeText); err != nil {
		return "", err
	}
	if len(params) < 4 {
		return "", InvalidCommand
	}
	if err := e.engine.SetColor(int(params[0]), params[1], params[2], params[3]); err != nil {
		return "", mapTextErr(err)
	}
	return "OK", nil
}

func (e *Executor) setAnimation(params []byte) (string, error) {
	if err := e.requireMode(ModeText); err != nil {
		return "", err
	}
	if len(params) < 2 {
		return "", InvalidCommand
	}
	row, kind := params[0], params[1]
	var tempo, dir uint8
	switch kind {
	case 0:
		// None: no further parameters.
	case 1:
		if len(params) < 3 {
			return "", InvalidCommand
		}
		tempo = params[2]
	case 2:
		if len(params) < 4 {
			return "", InvalidCommand
		}
		tempo, dir = params[2], params[3]
	default:
		return "", mapTextErr(textdisplay.ErrInvalidSetting)
	}
	if err := e.engine.SetAnimation(int(row), kind, tempo, dir); err != nil {
		return "", mapTextErr(err)
	}
	return "OK", nil
}

func (e *Executor) drawPixel(params []byte) (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	if len(params) < 5 {
		return "", InvalidCommand
	}
	x, y := int(params[0]), int(params[1])
	e.driver.DrawPixel(x, y, params[2], params[3], params[4])
	return "OK", nil
}

func (e *Executor) drawRow(params []byte) (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	if len(params) < 1 {
		return "", InvalidCommand
	}
	row := int(params[0])
	pixels := params[1:]
	if len(pixels) < 3*e.width {
		return "", InvalidCommand
	}
	for c := 0; c < e.width; c++ {
		r, g, b := pixels[3*c], pixels[3*c+1], pixels[3*c+2]
		e.driver.DrawPixel(c, row, r, g, b)
	}
	return "OK", nil
}

func (e *Executor) drawLine(params []byte) (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	if len(params) < 8 {
		return "", InvalidCommand
	}
	drawtarget.Line(e.canvas,
		int(params[0]), int(params[1]), int(params[2]), int(params[3]),
		params[4], rgba(params[5], params[6], params[7]))
	return "OK", nil
}

func (e *Executor) drawRectangle(params []byte) (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	if len(params) < 9 {
		return "", InvalidCommand
	}
	drawtarget.Rectangle(e.canvas,
		int(params[0]), int(params[1]), int(params[2]), int(params[3]),
		params[4], params[8] != 0, rgba(params[5], params[6], params[7]))
	return "OK", nil
}

func (e *Executor) drawTriangle(params []byte) (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	if len(params) < 11 {
		return "", InvalidCommand
	}
	drawtarget.Triangle(e.canvas,
		int(params[0]), int(params[1]), int(params[2]), int(params[3]), int(params[4]), int(params[5]),
		params[6], params[10] != 0, rgba(params[7], params[8], params[9]))
	return "OK", nil
}

func (e *Executor) drawCircle(params []byte) (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	if len(params) < 8 {
		return "", InvalidCommand
	}
	drawtarget.Circle(e.canvas,
		int(params[0]), int(params[1]), int(params[2]),
		params[3], params[7] != 0, rgba(params[4], params[5], params[6]))
	return "OK", nil
}

func (e *Executor) clear() (string, error) {
	if err := e.requireMode(ModeDirect); err != nil {
		return "", err
	}
	e.driver.Clear()
	return "cleared", nil
}

func rgba(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func mapTextErr(err error) error {
	switch err {
	case textdisplay.ErrRowOutOfRange:
		return OutOfBounds
	case textdisplay.ErrInvalidSetting:
		return InvalidSetting
	default:
		return DrawError
	}
}
