package pipeline

import "github.com/joeydtaylor/ppglab/pkg/internal/types"

// ConnectLogger registers loggers for the pipeline.
// Panics if called after Freeze.
func (p *Pipeline) ConnectLogger(loggers ...types.Logger) {
	p.requireNotFrozen("ConnectLogger")

	n := 0
	for _, l := range loggers {
		if l != nil {
			loggers[n] = l
			n++
		}
	}
	if n == 0 {
		return
	}

	p.loggersLock.Lock()
	p.loggers = append(p.loggers, loggers[:n]...)
	p.loggersLock.Unlock()
}

// ConnectSensor registers sensors for the pipeline.
// Panics if called after Freeze.
func (p *Pipeline) ConnectSensor(sensors ...types.Sensor) {
	p.requireNotFrozen("ConnectSensor")

	n := 0
	for _, s := range sensors {
		if s != nil {
			sensors[n] = s
			n++
		}
	}
	if n == 0 {
		return
	}
	sensors = sensors[:n]

	p.sensorsLock.Lock()
	p.sensors = append(p.sensors, sensors...)
	p.sensorsLock.Unlock()

	for _, s := range sensors {
		p.NotifyLoggers(
			types.DebugLevel,
			"ConnectSensor",
			"component", p.componentMetadata,
			"event", "ConnectSensor",
			"sensor", s.GetComponentMetadata(),
		)
	}
}

// GetSensors returns a snapshot of the connected sensors.
func (p *Pipeline) GetSensors() []types.Sensor {
	p.sensorsLock.Lock()
	defer p.sensorsLock.Unlock()
	return append([]types.Sensor(nil), p.sensors...)
}
