package sensor

import "github.com/joeydtaylor/ppglab/pkg/internal/types"

// ConnectLogger registers loggers for sensor output.
func (s *Sensor) ConnectLogger(loggers ...types.Logger) {
	n := 0
	for _, logger := range loggers {
		if logger != nil {
			loggers[n] = logger
			n++
		}
	}
	if n == 0 {
		return
	}

	s.loggersLock.Lock()
	s.loggers = append(s.loggers, loggers[:n]...)
	s.loggersLock.Unlock()
}

// ConnectMeter registers meters fed by the sensor's own callbacks.
func (s *Sensor) ConnectMeter(meter ...types.Meter) {
	n := 0
	for _, m := range meter {
		if m != nil {
			meter[n] = m
			n++
		}
	}
	if n == 0 {
		return
	}

	s.metersLock.Lock()
	s.meters = append(s.meters, meter[:n]...)
	s.metersLock.Unlock()
}

// GetMeters returns the connected meters.
func (s *Sensor) GetMeters() []types.Meter {
	return s.snapshotMeters()
}
