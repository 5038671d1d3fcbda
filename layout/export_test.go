package layout

// SetRunning marks a pass on e as in flight.
func SetRunning(e *Engine, running bool) {
	e.running.Store(running)
}
