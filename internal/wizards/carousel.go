package wizards

import (
	"strconv"

	"github.com/mrsinham/medintel/internal/flow"
)

// Slide is a page of the welcome carousel.
type Slide int

const (
	SlideMission Slide = iota + 1
	SlideHowItWorks
	SlideSafety
)

func (s Slide) String() string {
	return "slide-" + strconv.Itoa(int(s))
}

// CarouselDefinition returns the welcome carousel. No slide is gated.
func CarouselDefinition() flow.Definition[Slide] {
	return flow.Definition[Slide]{
		Name:  "welcome",
		Steps: []Slide{SlideMission, SlideHowItWorks, SlideSafety},
	}
}
