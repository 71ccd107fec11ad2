package signal_test

import (
	"testing"
	"time"

	"github.com/signcall/signcall/internal/adapters/signal"
)

func TestDetectLimiterWindow(t *testing.T) {
	rl := signal.NewDetectLimiter(2, 50*time.Millisecond)

	if !rl.Allow("c1") || !rl.Allow("c1") {
		t.Fatalf("first two requests should pass")
	}
	if rl.Allow("c1") {
		t.Fatalf("third request inside the window should be blocked")
	}
	if !rl.Allow("c2") {
		t.Fatalf("limits are per connection; c2 should pass")
	}

	time.Sleep(60 * time.Millisecond)
	if !rl.Allow("c1") {
		t.Fatalf("request after the window should pass")
	}
}

func TestDetectLimiterForget(t *testing.T) {
	rl := signal.NewDetectLimiter(1, time.Minute)
	if !rl.Allow("c1") {
		t.Fatalf("first request should pass")
	}
	rl.Forget("c1")
	if !rl.Allow("c1") {
		t.Fatalf("window should reset after Forget")
	}
}
