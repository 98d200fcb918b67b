package monitor

import "time"

// HealthData is the common wrapper for all health check results.
type HealthData struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Hostname  string      `json:"hostname,omitempty"`
	Platform  string      `json:"platform,omitempty"`
	Data      interface{} `json:"data"`
}

// FanStatusData contains the state of all fans on the platform.
type FanStatusData struct {
	Fans   []FanStatus `json:"fans"`
	Events []FanEvent  `json:"events,omitempty"`
}

// Fan status values as reported in health records.
const (
	FanStatusNormal      = "normal"
	FanStatusFault       = "fault"
	FanStatusUnavailable = "unavailable"
)

// FanStatus is the observed state of a single fan.
type FanStatus struct {
	// Fan is the 1-based fan number as printed on the chassis.
	Fan    int    `json:"fan"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// FanEvent records a fault/normal transition observed during a check.
type FanEvent struct {
	Fan   int    `json:"fan"`
	Fault bool   `json:"fault"`
	Msg   string `json:"msg"`
}

// ThermalData contains readings from the main-board thermal probes.
type ThermalData struct {
	Sensors []ThermalReading `json:"sensors"`

	// AverageMillidegrees is present only when every probe read
	// succeeded; a single unavailable probe fails the aggregate.
	AverageMillidegrees *int `json:"average_millidegrees,omitempty"`
}

// ThermalReading is one probe read, in integer millidegrees Celsius as
// exposed by the kernel.
type ThermalReading struct {
	// Index is the 1-based thermal probe index.
	Index        int    `json:"index"`
	Millidegrees int    `json:"millidegrees"`
	Available    bool   `json:"available"`
	Error        string `json:"error,omitempty"`
}

// CPUTempData contains host-level temperature sensors read through the
// OS rather than the platform module.
type CPUTempData struct {
	Sensors []CPUTempSensor `json:"sensors"`
}

// CPUTempSensor is a single host temperature sensor reading.
type CPUTempSensor struct {
	Name        string  `json:"name"`
	Temperature float64 `json:"temperature_celsius"`
	High        float64 `json:"high_celsius,omitempty"`
	Critical    float64 `json:"critical_celsius,omitempty"`
}
