package transport

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Serial bridge opcodes. Every request gets a reply: pin operations answer
// with bridgeAck, the others with data.
const (
	opResetAssert  byte = 0x01
	opResetRelease byte = 0x02
	opSelect       byte = 0x03
	opDeselect     byte = 0x04
	opDataReady    byte = 0x05
	opExchange     byte = 0x06
	opRead         byte = 0x07

	bridgeAck byte = 0x06

	// maxBridgeRead is the largest count a single opRead can carry.
	maxBridgeRead = 255
)

// SerialBridgeDialer opens the module through a microcontroller that bridges
// a serial port to the module's SPI bus and control lines.
type SerialBridgeDialer struct {
	PortName string
	// BaudRate defaults to 115200.
	BaudRate int
	// ReadTimeout defaults to one second.
	ReadTimeout time.Duration
}

// SerialBridge is a Transport over the bridge protocol.
type SerialBridge struct {
	port io.ReadWriteCloser
}

// Dial opens the serial port.
func (d SerialBridgeDialer) Dial(ctx context.Context) (Transport, error) {
	if d.PortName == "" {
		return nil, fmt.Errorf("serial bridge: port name is required: %w", ErrNoDevice)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := serial.Config{
		Name:        d.PortName,
		Baud:        d.BaudRate,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: d.ReadTimeout,
	}
	if c.Baud == 0 {
		c.Baud = 115200
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = time.Second
	}
	p, err := serial.OpenPort(&c)
	if err != nil {
		return nil, fmt.Errorf("serial bridge: open %s: %w", d.PortName, err)
	}
	if err := p.Flush(); err != nil {
		p.Close()
		return nil, fmt.Errorf("serial bridge: flush %s: %w", d.PortName, err)
	}
	return NewSerialBridge(p), nil
}

// NewSerialBridge wraps an already open port.
func NewSerialBridge(port io.ReadWriteCloser) *SerialBridge {
	return &SerialBridge{port: port}
}

func (b *SerialBridge) Reset() error {
	return pulseReset(
		func() error { return b.command(opResetAssert) },
		func() error { return b.command(opResetRelease) },
	)
}

func (b *SerialBridge) Select() error {
	if err := b.command(opSelect); err != nil {
		return err
	}
	time.Sleep(ChipSelectSettle)
	return nil
}

func (b *SerialBridge) Deselect() error {
	if err := b.command(opDeselect); err != nil {
		return err
	}
	time.Sleep(ChipSelectSettle)
	return nil
}

func (b *SerialBridge) DataReady() (bool, error) {
	resp, err := b.request([]byte{opDataReady}, 1)
	if err != nil {
		return false, err
	}
	switch resp[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("data ready reply 0x%02x: %w", resp[0], ErrBridge)
	}
}

func (b *SerialBridge) Exchange(word [2]byte) ([2]byte, error) {
	var in [2]byte
	resp, err := b.request([]byte{opExchange, word[0], word[1]}, 2)
	if err != nil {
		return in, err
	}
	copy(in[:], resp)
	return in, nil
}

func (b *SerialBridge) Read(count int, fill byte) ([]byte, error) {
	if count <= 0 || count > maxBridgeRead {
		return nil, fmt.Errorf("%w: %d", ErrReadCount, count)
	}
	return b.request([]byte{opRead, byte(count), fill}, count)
}

func (b *SerialBridge) Close() error {
	return b.port.Close()
}

func (b *SerialBridge) command(op byte) error {
	resp, err := b.request([]byte{op}, 1)
	if err != nil {
		return err
	}
	if resp[0] != bridgeAck {
		return fmt.Errorf("opcode 0x%02x answered 0x%02x: %w", op, resp[0], ErrBridge)
	}
	return nil
}

func (b *SerialBridge) request(req []byte, replyLen int) ([]byte, error) {
	if _, err := b.port.Write(req); err != nil {
		return nil, fmt.Errorf("write opcode 0x%02x: %w", req[0], err)
	}
	resp := make([]byte, replyLen)
	if _, err := io.ReadFull(b.port, resp); err != nil {
		return nil, fmt.Errorf("read reply to opcode 0x%02x: %w", req[0], err)
	}
	return resp, nil
}
