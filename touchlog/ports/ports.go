package ports

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	"go.bug.st/serial"
)

const DefaultBaudRate = 9600

// Open connects to a serial device that prints touch reports.
func Open(path string, baudRate int) (io.ReadCloser, error) {
	port, err := serial.Open(path, &serial.Mode{
		BaudRate: baudRate,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open port %s: %w", path, err)
	}

	// Touch panels stay quiet for long stretches between reports.
	if err := port.SetReadTimeout(10 * time.Hour); err != nil {
		_ = port.Close()

		return nil, fmt.Errorf("could not set read timeout on %s: %w", path, err)
	}

	return port, nil
}

// ReadFile emits every line of r and closes the channel at EOF.
func ReadFile(r io.Reader) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			out <- scanner.Text()
		}
	}()

	return out
}

// ReadFiles merges lines from all readers. The channel closes once every
// reader reached EOF.
func ReadFiles(readers ...io.Reader) <-chan string {
	out := make(chan string)

	var wg sync.WaitGroup

	for _, r := range readers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for line := range ReadFile(r) {
				out <- line
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

var touchDevicePattern = regexp.MustCompile(`^/dev/(tty\.usbmodem|ttyACM)\d+$`)

func LooksLikeTouchDevice(path string) bool {
	return touchDevicePattern.MatchString(path)
}

func GetAvailableDevices() ([]string, error) {
	names, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("could not get list of serial ports: %w", err)
	}

	result := make([]string, 0, len(names))

	for _, n := range names {
		if LooksLikeTouchDevice(n) {
			result = append(result, n)
		}
	}

	return result, nil
}
