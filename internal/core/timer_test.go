package core

import (
	"testing"
	"time"
)

func TestFixedStepZeroDelayAlwaysSteps(t *testing.T) {
	fs := NewFixedStep(0)
	for i := 0; i < 5; i++ {
		if !fs.ShouldStep() {
			t.Fatal("zero delay should step every tick")
		}
	}
}

func TestFixedStepPacesByDelay(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(100 * time.Millisecond)
	fs.now = func() time.Time { return now }

	if !fs.ShouldStep() {
		t.Fatal("first tick should step immediately")
	}
	now = now.Add(40 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not step before the delay elapsed")
	}
	now = now.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("should step once the delay elapsed")
	}

	fs.SetDelay(-time.Second)
	if fs.Delay() != 0 || !fs.ShouldStep() {
		t.Fatal("negative delay should behave as zero")
	}
}
