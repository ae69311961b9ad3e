// Package serialio runs the line-oriented command loop over a serial link.
package serialio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.bug.st/serial"

	"github.com/opengrab/go-gripper-serial/internal/logging"
)

// LineHandler processes one request line and writes any framed response.
type LineHandler interface {
	Dispatch(line []byte, w io.Writer)
}

// Open opens the named serial port in 8N1 mode at the given baud rate and
// drops anything buffered from before startup.
func Open(portName string, baud int) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}

	port.ResetInputBuffer()
	port.ResetOutputBuffer()
	return port, nil
}

// Listener reads newline-terminated lines from a serial link and feeds them
// to the handler, writing responses back onto the same link.
type Listener struct {
	rw      io.ReadWriter
	handler LineHandler
}

func NewListener(rw io.ReadWriter, h LineHandler) *Listener {
	return &Listener{rw: rw, handler: h}
}

// Serve runs until the link yields an error or EOF. Strictly sequential:
// each command completes, including its response write, before the next
// line is read. Blank lines are line noise and skipped.
func (l *Listener) Serve() error {
	scanner := bufio.NewScanner(l.rw)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		l.handler.Dispatch([]byte(line), l.rw)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("serial read: %w", err)
	}
	logging.Info("Serial link closed")
	return nil
}
