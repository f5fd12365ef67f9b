package betabrite

import (
	"errors"
	"fmt"
)

// DefaultSlot is the memory slot written when none is given.
const DefaultSlot = 'A'

var (
	// ErrInvalidConfig is wrapped by every configuration error.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoOptions means the command line was empty, or held only verbose.
	ErrNoOptions = fmt.Errorf("%w: no options supplied", ErrInvalidConfig)
	// ErrHelpRequested is reported for -h so the caller prints usage.
	ErrHelpRequested = fmt.Errorf("%w: help requested", ErrInvalidConfig)
	// ErrMessageConflict means both a message and a message file were given.
	ErrMessageConflict = fmt.Errorf("%w: message text and message file are mutually exclusive", ErrInvalidConfig)
	// ErrSlotLength means the memory slot is not exactly one byte.
	ErrSlotLength = fmt.Errorf("%w: memory slot must be a single character", ErrInvalidConfig)
	// ErrSpeedRange means the speed level is outside [0,5].
	ErrSpeedRange = fmt.Errorf("%w: speed must be between 0 and 5", ErrInvalidConfig)
	// ErrDeviceEmpty means the serial device was given as an empty path.
	ErrDeviceEmpty = fmt.Errorf("%w: serial device path is empty", ErrInvalidConfig)
	// ErrMessageUnavailable means the message source could not produce text.
	ErrMessageUnavailable = fmt.Errorf("%w: message unavailable", ErrInvalidConfig)
)

// Options is the raw command line before validation. Nil pointers mean the
// option was not given.
type Options struct {
	// Supplied counts the options given on the command line. Verbose does
	// not count.
	Supplied int
	Help     bool
	Verbose  bool

	Device      *string
	Slot        *string
	SpeedLevel  *int
	Message     *string
	MessageFile *string
}

// Config is the validated intent for one run. It is built once by Validate
// and only read afterwards.
type Config struct {
	Device      string
	Slot        byte
	SpeedLevel  int
	HoldSpeed   HoldSpeed
	Message     []byte
	MessageFile string
	Verbose     bool
}

// Validate checks o and resolves its message source. All problems found are
// reported together; each of them wraps ErrInvalidConfig.
func Validate(o Options) (Config, error) {
	cfg := Config{
		Device:     DefaultDevice,
		Slot:       DefaultSlot,
		SpeedLevel: DefaultSpeedLevel,
		HoldSpeed:  holdSpeeds[DefaultSpeedLevel],
		Message:    []byte{},
		Verbose:    o.Verbose,
	}

	var errs []error
	if o.Supplied == 0 {
		errs = append(errs, ErrNoOptions)
	}
	if o.Help {
		errs = append(errs, ErrHelpRequested)
	}

	if o.Device != nil {
		if *o.Device == "" {
			errs = append(errs, ErrDeviceEmpty)
		} else {
			cfg.Device = *o.Device
		}
	}

	if o.Slot != nil {
		if len(*o.Slot) != 1 {
			errs = append(errs, fmt.Errorf("%w: got %q", ErrSlotLength, *o.Slot))
		} else {
			cfg.Slot = (*o.Slot)[0]
		}
	}

	if o.SpeedLevel != nil {
		hs, err := HoldSpeedFor(*o.SpeedLevel)
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.SpeedLevel = *o.SpeedLevel
			cfg.HoldSpeed = hs
		}
	}

	if o.Message != nil && o.MessageFile != nil {
		errs = append(errs, ErrMessageConflict)
	} else {
		msg, err := SourceFor(o).Message()
		if err != nil {
			errs = append(errs, err)
		} else {
			cfg.Message = msg
		}
		if o.MessageFile != nil {
			cfg.MessageFile = *o.MessageFile
		}
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}
