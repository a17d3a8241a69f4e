package config

import "time"

// Max render resolution in terminal cells. Larger terminals get a centered area.
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Inactivity, for remote sessions
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Persistence
const (
	StoragePrefix = "lines" // Prefix of every settings slot key
	DefaultDBPath = ""      // Empty keeps settings in memory
)
