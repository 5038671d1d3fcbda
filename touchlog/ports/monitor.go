package ports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DeviceOpener opens a device by path.
type DeviceOpener func(path string) (io.ReadCloser, error)

// DeviceLister returns paths of devices that may be opened.
type DeviceLister func() ([]string, error)

// MonitoringDeviceReader polls for touch devices and forwards lines from
// every device it manages to open. Devices that disconnect are forgotten and
// picked up again by a later poll.
type MonitoringDeviceReader struct {
	devicesList map[string]io.ReadCloser
	lock        sync.RWMutex
	readers     sync.WaitGroup

	opener DeviceOpener
	lister DeviceLister

	pollingInterval time.Duration
}

func DefaultMonitoringDeviceReader(baudRate int) *MonitoringDeviceReader {
	return NewMonitoringDeviceReader(
		func(path string) (io.ReadCloser, error) { return Open(path, baudRate) },
		GetAvailableDevices,
		5*time.Second,
	)
}

func NewMonitoringDeviceReader(
	opener DeviceOpener,
	lister DeviceLister,
	pollingInterval time.Duration,
) *MonitoringDeviceReader {
	return &MonitoringDeviceReader{
		devicesList:     make(map[string]io.ReadCloser),
		opener:          opener,
		lister:          lister,
		pollingInterval: pollingInterval,
	}
}

func (r *MonitoringDeviceReader) Close() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for path, device := range r.devicesList {
		if err := device.Close(); err != nil {
			return fmt.Errorf("error closing device %s: %w", path, err)
		}

		delete(r.devicesList, path)
	}

	return nil
}

// OpenDevices returns the paths currently being read.
func (r *MonitoringDeviceReader) OpenDevices() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	result := make([]string, 0, len(r.devicesList))
	for path := range r.devicesList {
		result = append(result, path)
	}

	return result
}

func (r *MonitoringDeviceReader) forget(devicePath string, device io.ReadCloser) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if current, exists := r.devicesList[devicePath]; exists && current == device {
		delete(r.devicesList, devicePath)
	}

	if err := device.Close(); err != nil {
		slog.Debug("Device close after EOF failed", "path", devicePath, "error", err)
	}

	slog.Info("Device closed and removed from list", "path", devicePath)
}

func (r *MonitoringDeviceReader) AddDevice(devicePath string, out chan<- string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.devicesList[devicePath]; exists {
		slog.Debug("Device already exists, skipping", "path", devicePath)

		return nil
	}

	device, err := r.opener(devicePath)
	if err != nil {
		return fmt.Errorf("error opening device %s: %w", devicePath, err)
	}

	r.devicesList[devicePath] = device

	r.readers.Add(1)

	go func() {
		defer r.readers.Done()

		slog.Info("Device loop started", "path", devicePath)

		for line := range ReadFile(device) {
			out <- line
		}

		r.forget(devicePath, device)
	}()

	return nil
}

func (r *MonitoringDeviceReader) poll(out chan<- string) {
	devices, err := r.lister()
	if err != nil {
		slog.Error("Error finding devices", "error", err)

		return
	}

	for _, devicePath := range devices {
		if err := r.AddDevice(devicePath, out); err != nil {
			slog.Error("Could not add device", "path", devicePath, "error", err)
		}
	}
}

// Channel starts polling until ctx is done. Once it is, every device is
// closed and the channel is closed after the last buffered line.
func (r *MonitoringDeviceReader) Channel(ctx context.Context) <-chan string {
	outputChan := make(chan string, 5)

	go func() {
		slog.Info("Monitoring started")

		defer func() {
			if err := r.Close(); err != nil {
				slog.Error("Could not close devices", "error", err)
			}

			r.readers.Wait()
			close(outputChan)

			slog.Info("End monitoring")
		}()

		ticker := time.NewTicker(r.pollingInterval)
		defer ticker.Stop()

		for {
			r.poll(outputChan)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return outputChan
}
