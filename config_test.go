package betabrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestValidate_Defaults(t *testing.T) {
	cfg, err := Validate(Options{Supplied: 1, Message: ptr("HELLO")})
	require.NoError(t, err)

	require.Equal(t, DefaultDevice, cfg.Device)
	require.Equal(t, byte('A'), cfg.Slot)
	require.Equal(t, 1, cfg.SpeedLevel)
	require.Equal(t, SpeedSlowest, cfg.HoldSpeed)
	require.Equal(t, []byte("HELLO"), cfg.Message)
	require.Empty(t, cfg.MessageFile)
	require.False(t, cfg.Verbose)
}

func TestValidate_NoOptions(t *testing.T) {
	_, err := Validate(Options{})
	require.ErrorIs(t, err, ErrNoOptions)
	require.ErrorIs(t, err, ErrInvalidConfig)

	// verbose alone is not an option
	_, err = Validate(Options{Verbose: true})
	require.ErrorIs(t, err, ErrNoOptions)
}

func TestValidate_Help(t *testing.T) {
	_, err := Validate(Options{Supplied: 1, Help: true})
	require.ErrorIs(t, err, ErrHelpRequested)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_MessageConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))

	for _, tc := range []struct {
		name string
		text string
		file string
	}{
		{"existing file", "HELLO", path},
		{"missing file", "HELLO", filepath.Join(t.TempDir(), "missing.txt")},
		{"empty text", "", path},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(Options{Supplied: 2, Message: ptr(tc.text), MessageFile: ptr(tc.file)})
			require.ErrorIs(t, err, ErrMessageConflict)
			require.NotErrorIs(t, err, ErrMessageUnavailable)
		})
	}
}

func TestValidate_SlotLength(t *testing.T) {
	for _, slot := range []string{"", "AB", "ABC", "é"} {
		_, err := Validate(Options{Supplied: 1, Slot: ptr(slot)})
		require.ErrorIs(t, err, ErrSlotLength, "slot %q", slot)
	}

	for _, slot := range []string{"A", "z", "0", " ", "\x01"} {
		cfg, err := Validate(Options{Supplied: 1, Slot: ptr(slot)})
		require.NoError(t, err, "slot %q", slot)
		require.Equal(t, slot[0], cfg.Slot)
	}
}

func TestValidate_SpeedRange(t *testing.T) {
	for _, level := range []int{-1, 6, 9, 100} {
		_, err := Validate(Options{Supplied: 1, SpeedLevel: ptr(level)})
		require.ErrorIs(t, err, ErrSpeedRange, "level %d", level)
	}

	for level := 0; level <= 5; level++ {
		cfg, err := Validate(Options{Supplied: 1, SpeedLevel: ptr(level)})
		require.NoError(t, err)
		require.Equal(t, level, cfg.SpeedLevel)
		require.Equal(t, holdSpeeds[level], cfg.HoldSpeed)
	}
}

func TestValidate_MessageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0o644))

	cfg, err := Validate(Options{Supplied: 1, MessageFile: ptr(path)})
	require.NoError(t, err)
	require.Equal(t, []byte("line one\nline two"), cfg.Message)
	require.Equal(t, path, cfg.MessageFile)
}

func TestValidate_MissingMessageFile(t *testing.T) {
	_, err := Validate(Options{Supplied: 1, MessageFile: ptr(filepath.Join(t.TempDir(), "missing.txt"))})
	require.ErrorIs(t, err, ErrMessageUnavailable)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	_, err := Validate(Options{
		Supplied:    4,
		Slot:        ptr("AB"),
		SpeedLevel:  ptr(9),
		Message:     ptr("x"),
		MessageFile: ptr("y"),
	})
	require.ErrorIs(t, err, ErrSlotLength)
	require.ErrorIs(t, err, ErrSpeedRange)
	require.ErrorIs(t, err, ErrMessageConflict)
}

func TestValidate_Verbose(t *testing.T) {
	cfg, err := Validate(Options{Supplied: 1, Verbose: true, Device: ptr("/dev/ttyUSB1")})
	require.NoError(t, err)
	require.True(t, cfg.Verbose)
	require.Equal(t, "/dev/ttyUSB1", cfg.Device)
	require.Empty(t, cfg.Message)
}

func TestValidate_EmptyDevice(t *testing.T) {
	_, err := Validate(Options{Supplied: 2, Device: ptr(""), Message: ptr("HI")})
	require.ErrorIs(t, err, ErrDeviceEmpty)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
