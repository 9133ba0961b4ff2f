package auth

import (
	"testing"
	"time"
)

func newTestRateLimiter(t *testing.T, maxAttempts int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     maxAttempts,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
	})
	t.Cleanup(rl.Stop)
	return rl
}

func TestRateLimiter_LocksAfterMaxFailures(t *testing.T) {
	rl := newTestRateLimiter(t, 3)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("10.0.0.1", "counselor@school.edu")
		if !allowed {
			t.Fatalf("Attempt %d should be allowed", i+1)
		}
		rl.RecordFailure("10.0.0.1", "counselor@school.edu")
	}

	allowed, retryAfter := rl.Allow("10.0.0.1", "counselor@school.edu")
	if allowed {
		t.Error("Expected lockout after max failures")
	}
	if retryAfter <= 0 {
		t.Errorf("Expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiter_SuccessResets(t *testing.T) {
	rl := newTestRateLimiter(t, 3)

	rl.RecordFailure("10.0.0.1", "counselor@school.edu")
	rl.RecordFailure("10.0.0.1", "counselor@school.edu")
	rl.RecordSuccess("10.0.0.1", "counselor@school.edu")

	rl.RecordFailure("10.0.0.1", "counselor@school.edu")
	rl.RecordFailure("10.0.0.1", "counselor@school.edu")
	if allowed, _ := rl.Allow("10.0.0.1", "counselor@school.edu"); !allowed {
		t.Error("Success should have cleared the failure count")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestRateLimiter(t, 2)

	rl.RecordFailure("10.0.0.1", "counselor@school.edu")
	rl.RecordFailure("10.0.0.1", "counselor@school.edu")

	if allowed, _ := rl.Allow("10.0.0.1", "counselor@school.edu"); allowed {
		t.Error("Locked pair should not be allowed")
	}
	if allowed, _ := rl.Allow("10.0.0.2", "counselor@school.edu"); !allowed {
		t.Error("Different IP must not inherit the lockout")
	}
	if allowed, _ := rl.Allow("10.0.0.1", "other@school.edu"); !allowed {
		t.Error("Different email must not inherit the lockout")
	}
}

func TestRateLimiter_EmailNormalizedInKey(t *testing.T) {
	rl := newTestRateLimiter(t, 2)

	rl.RecordFailure("10.0.0.1", "Counselor@School.EDU")
	rl.RecordFailure("10.0.0.1", "counselor@school.edu")

	if allowed, _ := rl.Allow("10.0.0.1", "COUNSELOR@school.edu"); allowed {
		t.Error("Case variants of the same email must share one record")
	}
}
