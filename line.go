//go:build linux || darwin

package betabrite

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrLine is wrapped by errors returned while opening or configuring a line.
var ErrLine = errors.New("serial line")

// Parity selects the parity bit generated and checked on the line.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return fmt.Sprintf("Parity(%d)", int(p))
	}
}

// LineProfile is the complete line discipline for a port. It is applied to
// the termios settings in one step.
type LineProfile struct {
	BaudRate     int
	DataBits     int
	Parity       Parity
	StopBits     int
	HardwareFlow bool // RTS/CTS
	RawOutput    bool // no output post-processing at all
}

// SignProfile is what Alpha protocol signs expect: 9600 7E1 with RTS/CTS.
var SignProfile = LineProfile{
	BaudRate:     9600,
	DataBits:     7,
	Parity:       ParityEven,
	StopBits:     1,
	HardwareFlow: true,
	RawOutput:    true,
}

// apply writes the profile into t. Modem control lines are ignored and the
// receiver is enabled regardless of the profile.
func (p LineProfile) apply(t *unix.Termios) error {
	if err := setSpeed(t, p.BaudRate); err != nil {
		return err
	}

	t.Cflag |= unix.CLOCAL | unix.CREAD

	t.Cflag &^= unix.CSIZE
	switch p.DataBits {
	case 5:
		t.Cflag |= unix.CS5
	case 6:
		t.Cflag |= unix.CS6
	case 7:
		t.Cflag |= unix.CS7
	case 8:
		t.Cflag |= unix.CS8
	default:
		return fmt.Errorf("invalid data bits %d (must be 5..8)", p.DataBits)
	}

	t.Cflag &^= unix.PARENB | unix.PARODD
	switch p.Parity {
	case ParityNone:
	case ParityEven:
		t.Cflag |= unix.PARENB
	case ParityOdd:
		t.Cflag |= unix.PARENB | unix.PARODD
	default:
		return fmt.Errorf("invalid parity %v", p.Parity)
	}

	switch p.StopBits {
	case 1:
		t.Cflag &^= unix.CSTOPB
	case 2:
		t.Cflag |= unix.CSTOPB
	default:
		return fmt.Errorf("invalid stop bits %d (must be 1 or 2)", p.StopBits)
	}

	if p.HardwareFlow {
		t.Cflag |= unix.CRTSCTS
	} else {
		t.Cflag &^= unix.CRTSCTS
	}

	if p.RawOutput {
		t.Oflag &^= unix.OPOST | unix.ONLCR | unix.OCRNL
	}
	return nil
}

// ProfileMismatchError lists the profile fields a driver did not keep.
type ProfileMismatchError struct {
	Device string
	Fields []string
}

func (e *ProfileMismatchError) Error() string {
	return fmt.Sprintf("%s: line settings not applied: %s", e.Device, strings.Join(e.Fields, ", "))
}

// mismatches compares t against the profile and names every field that
// differs.
func (p LineProfile) mismatches(t *unix.Termios) []string {
	var fields []string

	want := *t
	if err := p.apply(&want); err != nil {
		return []string{err.Error()}
	}
	if speedOf(t) != speedOf(&want) {
		fields = append(fields, "baud rate")
	}
	if t.Cflag&unix.CSIZE != want.Cflag&unix.CSIZE {
		fields = append(fields, "data bits")
	}
	if t.Cflag&(unix.PARENB|unix.PARODD) != want.Cflag&(unix.PARENB|unix.PARODD) {
		fields = append(fields, "parity")
	}
	if t.Cflag&unix.CSTOPB != want.Cflag&unix.CSTOPB {
		fields = append(fields, "stop bits")
	}
	if t.Cflag&unix.CRTSCTS != want.Cflag&unix.CRTSCTS {
		fields = append(fields, "flow control")
	}
	if p.RawOutput && t.Oflag&(unix.OPOST|unix.ONLCR|unix.OCRNL) != 0 {
		fields = append(fields, "output processing")
	}
	return fields
}

// Line is an open serial port configured with a LineProfile. Writes block
// until the driver accepts the bytes. A Line is owned by one goroutine.
type Line struct {
	fd        int
	file      *os.File
	device    string
	profile   LineProfile
	closeOnce sync.Once
	closeErr  error
}

// OpenLine opens device and commits profile to it. On any failure the
// descriptor is closed and the error wraps ErrLine.
func OpenLine(device string, profile LineProfile) (*Line, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0666)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrLine, device, err)
	}

	// O_NONBLOCK was only needed so open does not wait for carrier.
	if err := unix.SetNonblock(fd, false); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: clear non-blocking: %w", ErrLine, device, err)
	}

	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: get termios: %w", ErrLine, device, err)
	}

	if err := profile.apply(termios); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %w", ErrLine, device, err)
	}

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, termios); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: set termios: %w", ErrLine, device, err)
	}

	return &Line{
		fd:      fd,
		file:    os.NewFile(uintptr(fd), device),
		device:  device,
		profile: profile,
	}, nil
}

// Device returns the path the line was opened from.
func (l *Line) Device() string {
	return l.device
}

// Profile returns the profile committed at open.
func (l *Line) Profile() LineProfile {
	return l.profile
}

// Verify reads the settings back from the driver. It returns a
// *ProfileMismatchError when the driver dropped part of the profile.
func (l *Line) Verify() error {
	termios, err := unix.IoctlGetTermios(l.fd, ioctlGetTermios)
	if err != nil {
		return fmt.Errorf("%w: %s: get termios: %w", ErrLine, l.device, err)
	}
	if fields := l.profile.mismatches(termios); len(fields) > 0 {
		return &ProfileMismatchError{Device: l.device, Fields: fields}
	}
	return nil
}

// Write writes p to the line.
func (l *Line) Write(p []byte) (int, error) {
	return l.file.Write(p)
}

// Close releases the device. Safe to call multiple times; subsequent calls
// return the first result.
func (l *Line) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.file.Close()
	})
	return l.closeErr
}
