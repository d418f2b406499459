package meter

import "github.com/joeydtaylor/ppglab/pkg/internal/types"

// ConnectLogger attaches loggers to the meter.
func (m *Meter) ConnectLogger(loggers ...types.Logger) {
	m.loggersLock.Lock()
	defer m.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
}

// Snapshot returns every tracked count and logs it at info level.
func (m *Meter) Snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	for _, name := range m.GetMetricNames() {
		out[name] = m.GetMetricCount(name)
	}

	m.loggersLock.Lock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.loggersLock.Unlock()

	kv := make([]interface{}, 0, 2*len(out)+2)
	kv = append(kv, "component", m.GetComponentMetadata())
	for _, name := range m.GetMetricNames() {
		kv = append(kv, name, out[name])
	}
	for _, l := range loggers {
		l.Info("Meter snapshot", kv...)
	}
	return out
}
