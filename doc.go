// Package betabrite writes a single text message to an Alpha protocol LED
// sign (BetaBrite and compatibles) attached to a serial port.
//
// The sign has no return channel worth listening to, so a run is strictly
// one-way: validate the options, resolve the message, open and configure the
// line, write the frame, close the line.
//
// Features:
//   - Declarative line profile (9600 baud, 7 data bits, even parity, 1 stop
//     bit, RTS/CTS, raw output) committed with a single termios call
//   - Frame builder made of named protocol sections, written one section per
//     write so a short write is caught where it happens
//   - Literal or file message sources
//   - PTY-based tests for the full frame path
//
// This package supports Linux and Darwin.
//
// Example usage:
//
//	device, msg := "/dev/ttyUSB0", "HELLO"
//	cfg, err := betabrite.Validate(betabrite.Options{
//	    Supplied: 2,
//	    Device:   &device,
//	    Message:  &msg,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	line, err := betabrite.OpenLine(cfg.Device, betabrite.SignProfile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer line.Close()
//
//	if _, err := betabrite.BuildFrame(cfg).WriteTo(line); err != nil {
//	    log.Println("Write failed:", err)
//	}
package betabrite
