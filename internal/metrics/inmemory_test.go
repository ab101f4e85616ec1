package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	m.IncUserRegistered()
	m.IncLogin(LoginSuccess)
	m.IncLogin(LoginFailure)
	m.IncLogin("anything-else")
	m.IncUserCacheHit()
	m.IncUserCacheMiss()
	m.IncUserCacheMiss()
	m.IncCardCreated()
	m.IncCardLiked()
	m.IncCardUnliked()
	m.IncCardDeleted()
	m.IncRateLimited()
	m.IncProfileUpdated()
	m.ObserveRequestDuration(150 * time.Millisecond)
	m.ObserveRequestDuration(50 * time.Millisecond)

	snap := m.Snapshot()

	checks := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"UsersRegistered", snap.UsersRegistered, 1},
		{"LoginsSucceeded", snap.LoginsSucceeded, 1},
		{"LoginsFailed", snap.LoginsFailed, 2},
		{"UserCacheHits", snap.UserCacheHits, 1},
		{"UserCacheMisses", snap.UserCacheMisses, 2},
		{"CardsCreated", snap.CardsCreated, 1},
		{"CardsLiked", snap.CardsLiked, 1},
		{"CardsUnliked", snap.CardsUnliked, 1},
		{"CardsDeleted", snap.CardsDeleted, 1},
		{"RateLimited", snap.RateLimited, 1},
		{"ProfilesUpdated", snap.ProfilesUpdated, 1},
		{"RequestDurationCount", snap.RequestDurationCount, 2},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if snap.RequestDurationTotalNs != (200 * time.Millisecond).Nanoseconds() {
		t.Errorf("RequestDurationTotalNs = %d, want %d", snap.RequestDurationTotalNs, (200 * time.Millisecond).Nanoseconds())
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncCardLiked()
		}()
	}
	wg.Wait()

	if got := m.Snapshot().CardsLiked; got != 50 {
		t.Errorf("CardsLiked = %d, want 50", got)
	}
}

func TestNoopRecorder_SatisfiesInterface(t *testing.T) {
	t.Parallel()

	var r Recorder = NewNoop()
	r.IncLogin(LoginSuccess)
	r.ObserveRequestDuration(time.Second)
}
