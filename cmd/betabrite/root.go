package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	betabrite "github.com/bm16ton/betabrite-alpha-led-signs"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	exitOK       = 0
	exitLine     = 1
	exitUsage    = 2
	exitTransmit = 3
)

type cliOptions struct {
	port       string
	slot       string
	speed      int
	message    string
	file       string
	configFile string
	help       bool
	verbose    bool
}

func registerFlags(fs *pflag.FlagSet, o *cliOptions) {
	fs.IntVarP(&o.speed, "speed", "s", betabrite.DefaultSpeedLevel, "how long to hold text; 0=no delay, 1-5=longest to shortest")
	fs.StringVarP(&o.port, "port", "p", betabrite.DefaultDevice, "serial port to use")
	fs.StringVarP(&o.slot, "slot", "b", string(rune(betabrite.DefaultSlot)), "memory file to store text; single char")
	fs.StringVarP(&o.message, "message", "m", "", "text of message to display")
	fs.StringVarP(&o.file, "file", "f", "", "filename to read message from")
	fs.StringVar(&o.configFile, "config", "", "YAML file with default port, slot and speed")
	fs.BoolVarP(&o.help, "help", "h", false, "this help screen")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "display input and status")
}

// options turns the parsed flags into betabrite.Options. Only flags given on
// the command line are carried over so defaults can be layered underneath.
func (o *cliOptions) options(fs *pflag.FlagSet) betabrite.Options {
	opts := betabrite.Options{
		Help:    o.help,
		Verbose: o.verbose,
	}
	fs.Visit(func(f *pflag.Flag) {
		if f.Name != "verbose" {
			opts.Supplied++
		}
	})
	if fs.Changed("port") {
		opts.Device = &o.port
	}
	if fs.Changed("slot") {
		opts.Slot = &o.slot
	}
	if fs.Changed("speed") {
		opts.SpeedLevel = &o.speed
	}
	if fs.Changed("message") {
		opts.Message = &o.message
	}
	if fs.Changed("file") {
		opts.MessageFile = &o.file
	}
	return opts
}

// signLine is what send needs from an open serial line.
type signLine interface {
	io.Writer
	Verify() error
	Close() error
}

type lineOpener func(device string, profile betabrite.LineProfile) (signLine, error)

func openLine(device string, profile betabrite.LineProfile) (signLine, error) {
	line, err := betabrite.OpenLine(device, profile)
	if err != nil {
		return nil, err
	}
	return line, nil
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar, open lineOpener) (*cobra.Command, *cliOptions) {
	o := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "betabrite",
		Short:         "Display a message on a BetaBrite LED sign",
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			opts := o.options(cmd.Flags())

			// a broken defaults file is reported along with the option errors
			var errs []error
			if o.configFile != "" {
				defaults, err := betabrite.ReadDefaults(o.configFile)
				if err != nil {
					errs = append(errs, err)
				} else {
					opts = defaults.Merge(opts)
				}
			}

			cfg, err := betabrite.Validate(opts)
			if err != nil {
				errs = append(errs, err)
			}
			if len(errs) > 0 {
				return errors.Join(errs...)
			}

			if cfg.Verbose {
				level.Set(slog.LevelDebug)
			}
			return send(logger, cfg, open)
		},
	}

	registerFlags(cmd.Flags(), o)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", betabrite.ErrInvalidConfig, err)
	})
	// usage is printed by run, once, for help and every configuration error
	cmd.SetHelpFunc(func(*cobra.Command, []string) {})

	return cmd, o
}

// send opens the line named in cfg and writes one frame to it. The line is
// closed on every path.
func send(logger *slog.Logger, cfg betabrite.Config, open lineOpener) (err error) {
	attrs := []any{
		"port", cfg.Device,
		"message", string(cfg.Message),
		"betafile", string([]byte{cfg.Slot}),
		"speed", cfg.SpeedLevel,
		"hold", cfg.HoldSpeed,
	}
	if cfg.MessageFile != "" {
		attrs = append(attrs, "message_file", cfg.MessageFile)
	}
	logger.Debug("sending message", attrs...)

	line, err := open(cfg.Device, betabrite.SignProfile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := line.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", betabrite.ErrTransmit, cfg.Device, cerr)
		}
	}()

	if verr := line.Verify(); verr != nil {
		var mismatch *betabrite.ProfileMismatchError
		if !errors.As(verr, &mismatch) {
			return verr
		}
		logger.Warn("serial driver did not keep all line settings", "port", cfg.Device, "fields", mismatch.Fields)
	}

	frame := betabrite.BuildFrame(cfg)
	n, err := frame.WriteTo(line)
	if err != nil {
		return err
	}
	logger.Debug("message sent", "port", cfg.Device, "bytes", n)
	return nil
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return execute(args, stdout, stderr, openLine)
}

func execute(args []string, stdout, stderr io.Writer, open lineOpener) int {
	level := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if args == nil {
		args = []string{}
	}

	cmd, o := newRootCmd(logger, level, open)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil && o.help {
		err = betabrite.ErrHelpRequested
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, betabrite.ErrInvalidConfig):
		if !errors.Is(err, betabrite.ErrHelpRequested) {
			logger.Error("invalid options", "error", err)
		}
		printUsage(stdout)
		return exitUsage
	case errors.Is(err, betabrite.ErrLine):
		logger.Error("unable to set up serial port", "error", err)
		return exitLine
	default:
		logger.Error("transmission failed", "error", err)
		return exitTransmit
	}
}
