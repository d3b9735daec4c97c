package extract

import (
	"testing"
	"time"
)

func TestCachedEngineReturnsSameResult(t *testing.T) {
	cached := NewCachedEngine(defaultEngine(t), time.Minute, time.Minute)

	text := "Adarand v. Pena, 515 U.S. 200 (1995)."
	first := cached.Extract(text)
	second := cached.Extract(text)

	if first != second {
		t.Error("Repeated extraction did not return the cached result")
	}
	if len(first.Citations) != 1 {
		t.Errorf("Citations = %d, want 1", len(first.Citations))
	}
}

func TestCachedEngineKeysByContent(t *testing.T) {
	cached := NewCachedEngine(defaultEngine(t), time.Minute, time.Minute)

	first := cached.Extract("Adarand v. Pena, 515 U.S. 200 (1995).")
	other := cached.Extract("Craig v. Boren, 429 U.S. 190 (1976).")

	if first == other {
		t.Error("Different documents shared a cache entry")
	}
}

func TestCachedEngineFlush(t *testing.T) {
	cached := NewCachedEngine(defaultEngine(t), time.Minute, time.Minute)

	text := "Adarand v. Pena, 515 U.S. 200 (1995)."
	first := cached.Extract(text)
	cached.Flush()
	second := cached.Extract(text)

	if first == second {
		t.Error("Flush did not evict the cached result")
	}
}

func TestCachedEngineExpiry(t *testing.T) {
	cached := NewCachedEngine(defaultEngine(t), 10*time.Millisecond, time.Millisecond)

	text := "Adarand v. Pena, 515 U.S. 200 (1995)."
	first := cached.Extract(text)
	time.Sleep(30 * time.Millisecond)
	second := cached.Extract(text)

	if first == second {
		t.Error("Expired entry was still served")
	}
}
