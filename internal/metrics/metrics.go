// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Login outcomes passed to IncLogin.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Recorder captures metric events for the application.
type Recorder interface {
	// HTTP metrics
	ObserveRequestDuration(duration time.Duration)
	IncRateLimited()

	// Account metrics
	IncUserRegistered()
	IncLogin(status string) // status: "success" or "failure"
	IncProfileUpdated()

	// User cache metrics
	IncUserCacheHit()
	IncUserCacheMiss()

	// Card metrics
	IncCardCreated()
	IncCardDeleted()
	IncCardLiked()
	IncCardUnliked()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
