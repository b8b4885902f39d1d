package models

import "time"

// HealthCheck is the outcome of one store probe.
type HealthCheck struct {
	CheckedAt time.Time `json:"checkedAt"`
	Healthy   bool      `json:"healthy"`
	Records   int       `json:"records"`
	Error     string    `json:"error,omitempty"`
}

// ServiceStatus is the payload served by the status endpoint.
type ServiceStatus struct {
	Backend           string       `json:"backend"`
	Database          string       `json:"database"` // "ok" or "unavailable"
	Records           *int         `json:"records,omitempty"`
	Uptime            string       `json:"uptime"`
	HostUptimeSeconds uint64       `json:"hostUptimeSeconds,omitempty"`
	MemoryRSSBytes    uint64       `json:"memoryRssBytes,omitempty"`
	LastHealthCheck   *HealthCheck `json:"lastHealthCheck,omitempty"`
}
