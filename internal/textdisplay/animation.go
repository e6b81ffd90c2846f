package textdisplay

// Kind is the tagged variant of a row's animation state.
type Kind int

const (
	AnimNone Kind = iota
	AnimBlink
	AnimSlide
)

// Direction is a Slide animation's travel direction.
type Direction int

const (
	SlideLeft Direction = iota
	SlideRight
)

// minSlideLength is the floor applied to every computed slide length,
// regardless of how short the row's text is.
const minSlideLength = 80

// slideWrapGap is the extra pause distance folded into a right-slide's
// wrap point; it gives the text a visible beat off-screen before it
// re-enters, rather than reappearing the instant it's fully scrolled past.
const slideWrapGap = 10

type animation struct {
	kind Kind

	// Blink
	period  int
	counter int
	visible bool

	// Slide
	direction   Direction
	tempo       int
	counter2    int
	xOffset     int
	slideLength int
}

func slideLengthFor(charCount, glyphWidth int) int {
	l := (charCount + 2) * glyphWidth
	if l < minSlideLength {
		l = minSlideLength
	}
	return l
}

func (a *animation) recomputeSlideLength(charCount, glyphWidth int) {
	a.slideLength = slideLengthFor(charCount, glyphWidth)
}

// resetSlidePosition places x_offset at a Slide animation's starting edge:
// the outer boundary it will wrap back to once the text has fully crossed
// the panel.
func (a *animation) resetSlidePosition() {
	if a.direction == SlideLeft {
		a.xOffset = a.slideLength
	} else {
		a.xOffset = -a.slideLength - slideWrapGap
	}
}

// tick advances the animation by one timer step.
func (a *animation) tick() {
	switch a.kind {
	case AnimBlink:
		a.counter++
		if a.counter >= a.period {
			a.visible = !a.visible
			a.counter = 0
		}

	case AnimSlide:
		a.counter2++
		if a.counter2 >= a.tempo {
			a.counter2 = 0
			if a.direction == SlideLeft {
				a.xOffset--
				if a.xOffset <= -a.slideLength {
					a.xOffset = a.slideLength
				}
			} else {
				a.xOffset++
				if a.xOffset >= a.slideLength {
					a.xOffset = -a.slideLength - slideWrapGap
				}
			}
		}
	}
}
