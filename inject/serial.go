package inject

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dasdy/vkbd/logging"
	"go.bug.st/serial"
)

const DefaultBaudRate = 9600

var ctx = logging.PackageCtx("inject")

// bridgeMarkers are substrings of port names USB serial bridges show up under.
var bridgeMarkers = []string{"tty.usbmodem", "ttyACM", "ttyUSB", "cu.usbserial"}

// SerialInjector is a LineInjector writing to a serial port.
type SerialInjector struct {
	*LineInjector

	path string
	port serial.Port
}

// OpenSerial opens the serial bridge at path. A baud of zero means
// DefaultBaudRate.
func OpenSerial(path string, baud int) (*SerialInjector, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open port %s: %w", path, err)
	}

	slog.InfoContext(ctx, "Opened serial bridge", "path", path, "baud", baud)

	return &SerialInjector{
		LineInjector: NewLineInjector(port),
		path:         path,
		port:         port,
	}, nil
}

func (s *SerialInjector) Path() string { return s.path }

func (s *SerialInjector) Close() error {
	slog.InfoContext(ctx, "Closing serial bridge", "path", s.path)

	if err := s.port.Close(); err != nil {
		return fmt.Errorf("could not close port %s: %w", s.path, err)
	}

	return nil
}

// LooksLikeBridge reports whether a port name is one a USB bridge would use.
func LooksLikeBridge(name string) bool {
	for _, marker := range bridgeMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}

	return false
}

// AvailableDevices lists serial ports that look like bridges. When none do,
// every port is returned so the user can still pick one.
func AvailableDevices() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not list serial ports: %w", err)
	}

	return filterBridges(names), nil
}

func filterBridges(names []string) []string {
	result := make([]string, 0, len(names))

	for _, n := range names {
		if LooksLikeBridge(n) {
			result = append(result, n)
		}
	}

	if len(result) == 0 {
		return names
	}

	return result
}
