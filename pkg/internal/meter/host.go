package meter

import (
	"fmt"
	"time"

	"github.com/joeydtaylor/ppglab/pkg/internal/types"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// HostUsage is one reading of host load, in percent.
type HostUsage struct {
	CPUPercent    float64
	MemoryPercent float64
}

// SampleHost reads CPU utilization averaged over interval (zero compares against the
// previous call) and current memory use, stores them in the host gauges and logs the
// reading. It blocks for interval.
func (m *Meter) SampleHost(interval time.Duration) (HostUsage, error) {
	cpuPercentages, err := cpu.Percent(interval, false)
	if err != nil {
		return HostUsage{}, fmt.Errorf("cpu usage: %w", err)
	}
	memStats, err := mem.VirtualMemory()
	if err != nil {
		return HostUsage{}, fmt.Errorf("memory usage: %w", err)
	}

	var usage HostUsage
	if len(cpuPercentages) > 0 {
		usage.CPUPercent = cpuPercentages[0]
	}
	usage.MemoryPercent = memStats.UsedPercent

	m.hostCPU.Set(usage.CPUPercent)
	m.hostMemory.Set(usage.MemoryPercent)

	m.loggersLock.Lock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.loggersLock.Unlock()
	for _, l := range loggers {
		l.Debug("Host usage",
			"component", m.GetComponentMetadata(),
			"event", "HostSample",
			"cpu_percent", usage.CPUPercent,
			"memory_percent", usage.MemoryPercent,
		)
	}
	return usage, nil
}
