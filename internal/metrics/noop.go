package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) ObserveRequestDuration(time.Duration) {}
func (n *NoopRecorder) IncRateLimited()                      {}
func (n *NoopRecorder) IncUserRegistered()                   {}
func (n *NoopRecorder) IncLogin(string)                      {}
func (n *NoopRecorder) IncProfileUpdated()                   {}
func (n *NoopRecorder) IncUserCacheHit()                     {}
func (n *NoopRecorder) IncUserCacheMiss()                    {}
func (n *NoopRecorder) IncCardCreated()                      {}
func (n *NoopRecorder) IncCardDeleted()                      {}
func (n *NoopRecorder) IncCardLiked()                        {}
func (n *NoopRecorder) IncCardUnliked()                      {}
