package api

import (
	"net/http"

	"ecocore/internal/domain"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// handleSystemStats reports the health of the machine the daemon runs on.
func (api *Server) handleSystemStats(w http.ResponseWriter, r *http.Request) {
	stats := domain.HostStats{}

	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		stats.CPUPercent = percentages[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsed = vm.Used
		stats.MemoryTotal = vm.Total
		stats.MemoryPercent = vm.UsedPercent
	}

	if uptime, err := host.Uptime(); err == nil {
		stats.UptimeSeconds = uptime
	}

	writeJSON(w, http.StatusOK, stats)
}
