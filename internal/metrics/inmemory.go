package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RequestDurationCount   uint64
	RequestDurationTotalNs int64
	RateLimited            uint64
	UsersRegistered        uint64
	LoginsSucceeded        uint64
	LoginsFailed           uint64
	ProfilesUpdated        uint64
	UserCacheHits          uint64
	UserCacheMisses        uint64
	CardsCreated           uint64
	CardsDeleted           uint64
	CardsLiked             uint64
	CardsUnliked           uint64
}

// InMemoryRecorder keeps counters in process memory. It backs the /metrics
// endpoint and is used directly by tests.
type InMemoryRecorder struct {
	requestDurationCount   atomic.Uint64
	requestDurationTotalNs atomic.Int64
	rateLimited            atomic.Uint64
	usersRegistered        atomic.Uint64
	loginsSucceeded        atomic.Uint64
	loginsFailed           atomic.Uint64
	profilesUpdated        atomic.Uint64
	userCacheHits          atomic.Uint64
	userCacheMisses        atomic.Uint64
	cardsCreated           atomic.Uint64
	cardsDeleted           atomic.Uint64
	cardsLiked             atomic.Uint64
	cardsUnliked           atomic.Uint64
}

var _ Recorder = (*InMemoryRecorder)(nil)

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RequestDurationCount:   m.requestDurationCount.Load(),
		RequestDurationTotalNs: m.requestDurationTotalNs.Load(),
		RateLimited:            m.rateLimited.Load(),
		UsersRegistered:        m.usersRegistered.Load(),
		LoginsSucceeded:        m.loginsSucceeded.Load(),
		LoginsFailed:           m.loginsFailed.Load(),
		ProfilesUpdated:        m.profilesUpdated.Load(),
		UserCacheHits:          m.userCacheHits.Load(),
		UserCacheMisses:        m.userCacheMisses.Load(),
		CardsCreated:           m.cardsCreated.Load(),
		CardsDeleted:           m.cardsDeleted.Load(),
		CardsLiked:             m.cardsLiked.Load(),
		CardsUnliked:           m.cardsUnliked.Load(),
	}
}

// ObserveRequestDuration records how long a request took.
func (m *InMemoryRecorder) ObserveRequestDuration(duration time.Duration) {
	m.requestDurationCount.Add(1)
	m.requestDurationTotalNs.Add(duration.Nanoseconds())
}

// IncRateLimited counts a request rejected by the rate limiter.
func (m *InMemoryRecorder) IncRateLimited() {
	m.rateLimited.Add(1)
}

// IncUserRegistered counts a successful signup.
func (m *InMemoryRecorder) IncUserRegistered() {
	m.usersRegistered.Add(1)
}

// IncLogin counts a signin attempt by outcome.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == LoginSuccess {
		m.loginsSucceeded.Add(1)
		return
	}
	m.loginsFailed.Add(1)
}

// IncProfileUpdated counts a profile or avatar change.
func (m *InMemoryRecorder) IncProfileUpdated() {
	m.profilesUpdated.Add(1)
}

// IncUserCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	m.userCacheHits.Add(1)
}

// IncUserCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	m.userCacheMisses.Add(1)
}

func (m *InMemoryRecorder) IncCardCreated() { m.cardsCreated.Add(1) }
func (m *InMemoryRecorder) IncCardDeleted() { m.cardsDeleted.Add(1) }
func (m *InMemoryRecorder) IncCardLiked()   { m.cardsLiked.Add(1) }
func (m *InMemoryRecorder) IncCardUnliked() { m.cardsUnliked.Add(1) }
