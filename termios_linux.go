package betabrite

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultDevice is the first on-board serial port.
const DefaultDevice = "/dev/ttyS0"

const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)

var baudRates = map[int]uint32{
	1200:   unix.B1200,
	2400:   unix.B2400,
	4800:   unix.B4800,
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
}

func setSpeed(t *unix.Termios, baud int) error {
	speed, ok := baudRates[baud]
	if !ok {
		return fmt.Errorf("unsupported baud rate %d", baud)
	}
	t.Cflag &^= unix.CBAUD
	t.Cflag |= speed
	t.Ispeed = speed
	t.Ospeed = speed
	return nil
}

func speedOf(t *unix.Termios) uint64 {
	return uint64(t.Cflag & unix.CBAUD)
}
