package module

import (
	"context"
	"time"

	"github.com/go-logr/logr"
)

//go:generate mockgen -source=module.go -destination=mock_module.go -package=module

// Module is an interface representing the ISM43362 command channel.
//
// SendCommand frames cmd, exchanges it with the module and returns the
// cleaned reply text. Implementations serialize calls; one command is on the
// wire at a time.
type Module interface {
	SendCommand(ctx context.Context, cmd string) (string, error)
	Close() error
}

// Clock is the time source used while polling the data-ready line.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Settings configures the command channel.
type Settings struct {
	// ReadyTimeout bounds each wait for the data-ready line. Joining an
	// access point keeps the line low for several seconds, so keep this
	// generous.
	ReadyTimeout time.Duration
	// PollInterval is the pause between data-ready samples.
	PollInterval time.Duration
	// Clock defaults to the wall clock.
	Clock Clock
	// Logger receives command traces at V(1).
	Logger logr.Logger
}

func (s *Settings) setDefaults() {
	if s.ReadyTimeout == 0 {
		s.ReadyTimeout = 30 * time.Second
	}
	if s.PollInterval == 0 {
		s.PollInterval = 100 * time.Microsecond
	}
	if s.Clock == nil {
		s.Clock = realClock{}
	}
	if s.Logger.GetSink() == nil {
		s.Logger = logr.Discard()
	}
}
