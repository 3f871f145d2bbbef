package transport

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultFrequency is the SPI clock used when none is configured.
const DefaultFrequency = 115200 * physic.Hertz

// SPIDevDialer opens the module on a Linux spidev port. Chip-select is driven
// as a plain GPIO because the module needs it held across many words.
type SPIDevDialer struct {
	// Port is the periph.io SPI port name, e.g. "SPI0.0". Empty selects the
	// first available port.
	Port string
	// ChipSelect, DataReady and Reset are GPIO names, e.g. "GPIO8".
	ChipSelect string
	DataReady  string
	Reset      string
	// Frequency defaults to DefaultFrequency.
	Frequency physic.Frequency
}

// SPIDev is a Transport on top of periph.io SPI and GPIO.
type SPIDev struct {
	port  spi.PortCloser
	conn  spi.Conn
	cs    gpio.PinIO
	drdy  gpio.PinIO
	reset gpio.PinIO
}

// Dial initializes the host drivers, opens the SPI port and claims the pins.
func (d SPIDevDialer) Dial(ctx context.Context) (Transport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.ChipSelect == "" || d.DataReady == "" || d.Reset == "" {
		return nil, fmt.Errorf("spidev: chip select, data ready and reset pins are required: %w", ErrNoDevice)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("spidev: init host drivers: %w", err)
	}

	pins := make(map[string]gpio.PinIO, 3)
	for _, name := range []string{d.ChipSelect, d.DataReady, d.Reset} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("spidev: unknown pin %q: %w", name, ErrNoDevice)
		}
		pins[name] = p
	}

	freq := d.Frequency
	if freq == 0 {
		freq = DefaultFrequency
	}
	port, err := spireg.Open(d.Port)
	if err != nil {
		return nil, fmt.Errorf("spidev: open port %q: %w", d.Port, err)
	}
	conn, err := port.Connect(freq, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("spidev: connect %q: %w", d.Port, err)
	}

	s := &SPIDev{
		port:  port,
		conn:  conn,
		cs:    pins[d.ChipSelect],
		drdy:  pins[d.DataReady],
		reset: pins[d.Reset],
	}
	if err := s.drdy.In(gpio.PullDown, gpio.NoEdge); err != nil {
		port.Close()
		return nil, fmt.Errorf("spidev: configure data ready: %w", err)
	}
	if err := s.cs.Out(gpio.High); err != nil {
		port.Close()
		return nil, fmt.Errorf("spidev: configure chip select: %w", err)
	}
	if err := s.reset.Out(gpio.High); err != nil {
		port.Close()
		return nil, fmt.Errorf("spidev: configure reset: %w", err)
	}
	return s, nil
}

func (s *SPIDev) Reset() error {
	return pulseReset(
		func() error { return s.reset.Out(gpio.Low) },
		func() error { return s.reset.Out(gpio.High) },
	)
}

func (s *SPIDev) Select() error {
	return s.setChipSelect(gpio.Low)
}

func (s *SPIDev) Deselect() error {
	return s.setChipSelect(gpio.High)
}

func (s *SPIDev) setChipSelect(l gpio.Level) error {
	if err := s.cs.Out(l); err != nil {
		return err
	}
	time.Sleep(ChipSelectSettle)
	return nil
}

func (s *SPIDev) DataReady() (bool, error) {
	return s.drdy.Read() == gpio.High, nil
}

func (s *SPIDev) Exchange(word [2]byte) ([2]byte, error) {
	var in [2]byte
	if err := s.conn.Tx(word[:], in[:]); err != nil {
		return in, err
	}
	return in, nil
}

func (s *SPIDev) Read(count int, fill byte) ([]byte, error) {
	if count <= 0 {
		return nil, ErrReadCount
	}
	out := make([]byte, count)
	for i := range out {
		out[i] = fill
	}
	in := make([]byte, count)
	if err := s.conn.Tx(out, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *SPIDev) Close() error {
	s.cs.Out(gpio.High)
	return s.port.Close()
}
