package state

import "time"

const (
	// SignalPrefix is the prefix of every named signal exchanged with the host simulation
	SignalPrefix = "AFDX"
)

var (
	TickInterval         = time.Millisecond * 100
	DispatchWarnDuration = time.Millisecond * 4
	ChaosMaxTicks        = 50
	ChaosStream          = "adcn-chaos"

	// expected shape of the A380 networks
	DefaultNetworkSize = 8

	// serves /debug/vars and /debug/metrics
	DebugAddr = "127.0.0.1:6060"
)

var (
	DBG_log_route_table   = false
	DBG_log_route_changes = false
	DBG_log_signals       = false
	DBG_debug             = false
)
