package vkbd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dasdy/vkbd/dispatch"
	"github.com/dasdy/vkbd/inject"
	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/layout"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	layoutFile     string
	width          int
	keyOpts        keyboard.Options
	cellWidth      int
	cellHeight     int
	modifierPolicy string
	device         string
	baud           int
)

func addKeyboardFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&layoutFile, "layout-file", "l", "", "XML file with the keyboard layouts")
	flags.IntVarP(&width, "width", "w", 800, "Width, in pixels, the keyboard is arranged into")

	flags.IntVar(&keyOpts.KeyBorder, "key-border", 1, "Border around every key, in pixels")
	flags.IntVar(&keyOpts.KeyPad, "key-pad", 2, "Padding inside every key, in pixels")
	flags.IntVar(&keyOpts.KeyMargin, "key-margin", 1, "Margin outside every key, in pixels")
	flags.IntVar(&keyOpts.RowSpacing, "row-spacing", 4, "Gap between rows, in pixels")
	flags.IntVar(&keyOpts.ColSpacing, "col-spacing", 4, "Gap between keys of a row, in pixels")

	flags.IntVar(&cellWidth, "cell-width", 16, "Width of one glyph cell, in pixels")
	flags.IntVar(&cellHeight, "cell-height", 24, "Height of a key's content, in pixels")

	flags.StringVar(&modifierPolicy, "modifier-policy", "momentary",
		"How modifier keys behave: momentary, locked or oneshot")
	flags.StringVarP(&device, "device", "d", "", "Serial bridge to send key events to instead of stdout")
	flags.IntVar(&baud, "baud", inject.DefaultBaudRate, "Baud rate of the serial bridge")
}

// layoutPath is the layout file to read. Relative paths from the config file
// are relative to that file, those from the command line to the working
// directory.
func layoutPath() (string, error) {
	if layoutFile == "" {
		return "", errors.New("no layout file given, set --layout-file or layout-file in the config")
	}

	baseDir := ""
	if used := viper.ConfigFileUsed(); used != "" && fromConfig["layout-file"] {
		baseDir = filepath.Dir(used)
	}

	return layout.ResolvePath(layoutFile, baseDir), nil
}

// buildKeyboard loads and arranges a fresh keyboard from the configured file.
func buildKeyboard() (*keyboard.Keyboard, error) {
	path, err := layoutPath()
	if err != nil {
		return nil, err
	}

	kb := keyboard.New(keyOpts)

	if err := layout.LoadFile(kb, path, ""); err != nil {
		return nil, err
	}

	measurer := keyboard.CellMeasurer{CellWidth: cellWidth, CellHeight: cellHeight}
	if err := kb.Arrange(width, measurer); err != nil {
		return nil, fmt.Errorf("could not arrange %s: %w", path, err)
	}

	return kb, nil
}

// newEngine wires a keyboard to the configured injector. The returned func
// closes the injector.
func newEngine(kb *keyboard.Keyboard, stdout io.Writer) (*dispatch.Engine, func(), error) {
	policy, err := dispatch.ParsePolicy(modifierPolicy)
	if err != nil {
		return nil, nil, err
	}

	if device == "" {
		return dispatch.New(kb, inject.NewLineInjector(stdout), dispatch.WithPolicy(policy)), func() {}, nil
	}

	bridge, err := inject.OpenSerial(device, baud)
	if err != nil {
		// Try suggesting devices
		names, errInner := inject.AvailableDevices()
		if errInner != nil {
			return nil, nil, fmt.Errorf("%w; could not suggest devices: %w", err, errInner)
		}

		if len(names) > 0 {
			return nil, nil, fmt.Errorf("%w. Maybe try instead: %+v", err, names)
		}

		return nil, nil, fmt.Errorf("%w. It does not seem like any bridge is connected", err)
	}

	closer := func() {
		if err := bridge.Close(); err != nil {
			slog.ErrorContext(ctx, "Could not close bridge", "error", err)
		}
	}

	return dispatch.New(kb, bridge, dispatch.WithPolicy(policy)), closer, nil
}
