// Package layout switches both hands between landscape and portrait row
// capacities whenever the display surface changes orientation.
package layout

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/palemoky/go-fish/internal/apperrors"
	"github.com/palemoky/go-fish/internal/game/hand"
)

// Mode is the measured orientation of the display surface.
type Mode int

const (
	ModeUnknown Mode = iota
	ModeLandscape
	ModePortrait
)

func (m Mode) String() string {
	switch m {
	case ModeLandscape:
		return "landscape"
	case ModePortrait:
		return "portrait"
	default:
		return "unknown"
	}
}

// Display reports the current size of the surface the table is drawn on.
type Display interface {
	Size() (width, height int)
}

// Capacity is the pair of row capacities applied in one mode. The local and
// the remote hand may fit a different number of cards per row.
type Capacity struct {
	Local  int `yaml:"local"`
	Remote int `yaml:"remote"`
}

// Capacities holds the row capacities per mode.
type Capacities struct {
	Landscape Capacity `yaml:"landscape"`
	Portrait  Capacity `yaml:"portrait"`
}

// Validate rejects capacities below one.
func (c Capacities) Validate() error {
	for _, v := range []struct {
		name string
		n    int
	}{
		{"landscape.local", c.Landscape.Local},
		{"landscape.remote", c.Landscape.Remote},
		{"portrait.local", c.Portrait.Local},
		{"portrait.remote", c.Portrait.Remote},
	} {
		if v.n < 1 {
			return apperrors.Configuration("%s row capacity must be at least 1, got %d", v.name, v.n)
		}
	}
	return nil
}

func (c Capacities) forMode(m Mode) Capacity {
	if m == ModeLandscape {
		return c.Landscape
	}
	return c.Portrait
}

// Orchestrator polls the display once per Tick. It starts in ModeUnknown, so
// the first Tick always applies a layout.
type Orchestrator struct {
	display Display
	local   *hand.Hand
	remote  *hand.Hand
	caps    Capacities
	mode    Mode
	log     logrus.FieldLogger
}

// New validates caps and builds an orchestrator for the two hands.
func New(display Display, local, remote *hand.Hand, caps Capacities, log logrus.FieldLogger) (*Orchestrator, error) {
	if err := caps.Validate(); err != nil {
		return nil, err
	}
	if display == nil || local == nil || remote == nil {
		return nil, apperrors.Configuration("orchestrator needs a display and both hands")
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Orchestrator{
		display: display,
		local:   local,
		remote:  remote,
		caps:    caps,
		log:     log,
	}, nil
}

// Mode returns the mode applied by the last transition.
func (o *Orchestrator) Mode() Mode {
	return o.mode
}

// Measure maps a surface size to a mode. Square surfaces count as portrait.
func Measure(width, height int) Mode {
	if width > height {
		return ModeLandscape
	}
	return ModePortrait
}

// Tick measures the display and, when the mode changed, pushes the new row
// capacities into both hands and lays them out again. It reports the current
// mode and whether a transition happened.
func (o *Orchestrator) Tick() (Mode, bool) {
	w, h := o.display.Size()
	next := Measure(w, h)
	if next == o.mode {
		return o.mode, false
	}

	c := o.caps.forMode(next)
	// capacities were validated in New
	_ = o.local.SetRowCapacity(c.Local)
	_ = o.remote.SetRowCapacity(c.Remote)

	o.log.WithFields(logrus.Fields{
		"from":   o.mode.String(),
		"to":     next.String(),
		"width":  w,
		"height": h,
	}).Info("Layout mode changed")
	o.mode = next

	o.local.Recompute()
	o.remote.Recompute()
	return o.mode, true
}
