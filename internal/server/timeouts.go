package server

import "time"

type timeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// apiTimeouts leave room in write for an admin refresh, which runs a full update cycle
// including the per-athlete batch against the provider.
var apiTimeouts = timeouts{
	readHeader: 5 * time.Second,
	read:       10 * time.Second,
	write:      2 * time.Minute,
	idle:       60 * time.Second,
}

var metricsTimeouts = timeouts{
	readHeader: 5 * time.Second,
	read:       10 * time.Second,
	write:      10 * time.Second,
	idle:       60 * time.Second,
}

const redisDialTimeout = 5 * time.Second

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
