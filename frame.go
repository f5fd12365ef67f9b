package betabrite

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrTransmit is wrapped by errors returned while writing a frame.
var ErrTransmit = errors.New("transmit failed")

// Fixed protocol groups.
var (
	wakeUp       = make([]byte, 20)       // NULs to get the sign's attention
	startHeader  = []byte{0x01}           // SOH
	typeAllSigns = []byte{'Z'}            // every sign on the line
	addressAll   = []byte("00")           // sign address
	startText    = []byte{0x02}           // STX
	writeText    = []byte{'A'}            // write TEXT file command
	modeEscape   = []byte{0x1b, ' ', 'o'} // ESC, middle line, automode
	modeFlag     = []byte{0x07}           // fixed flag after the mode escape
	wideOff      = []byte{0x11}           // no double-wide characters
	colorSelect  = []byte{0x1c, 'C'}      // whole line color
	endTransmit  = []byte{0x04}           // EOT
)

// holdSpeedRepeat is how many times the hold speed is sent; the sign has been
// seen to drop it.
const holdSpeedRepeat = 5

// Section is one named group of frame bytes, written with a single write.
type Section struct {
	Name  string
	Bytes []byte
}

// Frame is the ordered list of sections sent to the sign in one run.
type Frame []Section

// BuildFrame lays out the write-text frame for cfg. The result depends on
// cfg alone.
func BuildFrame(cfg Config) Frame {
	return Frame{
		{"wake-up", wakeUp},
		{"start-of-header", startHeader},
		{"type-code", typeAllSigns},
		{"address", addressAll},
		{"start-of-text", startText},
		{"command", writeText},
		{"slot", []byte{cfg.Slot}},
		{"mode", modeEscape},
		{"mode-flag", modeFlag},
		{"hold-speed", bytes.Repeat([]byte{byte(cfg.HoldSpeed)}, holdSpeedRepeat)},
		{"wide-off", wideOff},
		{"color", colorSelect},
		{"message", cfg.Message},
		{"end-of-transmission", endTransmit},
	}
}

// Bytes returns the frame as one contiguous byte slice.
func (f Frame) Bytes() []byte {
	var buf bytes.Buffer
	for _, s := range f {
		buf.Write(s.Bytes)
	}
	return buf.Bytes()
}

// Len is the total number of bytes in the frame.
func (f Frame) Len() int {
	n := 0
	for _, s := range f {
		n += len(s.Bytes)
	}
	return n
}

// WriteTo writes each section with its own Write call, in order. Empty
// sections are skipped. The first error or short write stops the frame.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range f {
		if len(s.Bytes) == 0 {
			continue
		}
		n, err := w.Write(s.Bytes)
		total += int64(n)
		if err == nil && n < len(s.Bytes) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return total, fmt.Errorf("%w: section %s: %w", ErrTransmit, s.Name, err)
		}
	}
	return total, nil
}
