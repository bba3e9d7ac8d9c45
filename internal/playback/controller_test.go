package playback

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayFromOffBumpsToNormal(t *testing.T) {
	c := New(5)
	defer c.Close()

	require.Equal(t, SpeedOff, c.CurrentSpeed())

	c.Play()
	assert.True(t, c.Playing())
	assert.Equal(t, SpeedNormal, c.CurrentSpeed())
	assert.True(t, c.Pending())
}

func TestAutoplayTerminationAtLastStep(t *testing.T) {
	c := New(3)
	defer c.Close()

	c.StepTo(2)
	c.Play()

	// Starting at the last index pauses immediately, no wrap to 0.
	assert.False(t, c.Playing())
	assert.Equal(t, 2, c.Index())
	assert.False(t, c.Pending())
}

func TestPauseCancelsPendingTick(t *testing.T) {
	c := New(10)
	defer c.Close()

	c.Play()
	require.True(t, c.Pending())

	c.Pause()
	assert.False(t, c.Playing())
	assert.False(t, c.Pending())

	// No stray advance after the cancel.
	idx := c.Index()
	time.Sleep(3 * time.Duration(SpeedFast) / 2)
	assert.Equal(t, idx, c.Index())
}

func TestSetSpeedOffForcesPause(t *testing.T) {
	c := New(10)
	defer c.Close()

	c.Play()
	c.SetSpeed(SpeedOff)

	assert.False(t, c.Playing())
	assert.False(t, c.Pending())
	assert.Equal(t, SpeedOff, c.CurrentSpeed())
}

func TestSetSpeedWhilePausedStaysPaused(t *testing.T) {
	c := New(10)
	defer c.Close()

	c.SetSpeed(SpeedFast)
	assert.False(t, c.Playing())
	assert.False(t, c.Pending())
}

func TestStepToClampsWithoutAlteringPlayState(t *testing.T) {
	c := New(5)
	defer c.Close()

	c.StepTo(99)
	assert.Equal(t, 4, c.Index())
	assert.False(t, c.Playing())

	c.StepTo(-3)
	assert.Equal(t, 0, c.Index())

	c.Play()
	c.StepTo(2)
	assert.True(t, c.Playing())
	assert.True(t, c.Pending())
}

func TestSinglePendingTimerAfterRapidTransitions(t *testing.T) {
	c := New(100)
	defer c.Close()

	// Hammer the transitions; Pending is a single slot by construction,
	// so this checks no path leaves a timer armed while paused.
	for i := 0; i < 50; i++ {
		c.Play()
		c.SetSpeed(SpeedFast)
		c.StepTo(i % 10)
		c.Pause()
	}
	assert.False(t, c.Pending())

	c.Play()
	assert.True(t, c.Pending())
	c.Pause()
	assert.False(t, c.Pending())
}

func TestTickAdvancesAndStopsAtEnd(t *testing.T) {
	c := New(3)
	defer c.Close()

	c.SetSpeed(SpeedFast)
	c.Play()

	require.Eventually(t, func() bool { return c.Index() >= 1 },
		2*time.Second, 10*time.Millisecond)

	// The final frame dwells one interval, then autoplay pauses at the
	// last index without wrapping.
	require.Eventually(t, func() bool { return !c.Playing() },
		4*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2, c.Index())
	assert.False(t, c.Pending())
}

func TestResetRewindsAndPauses(t *testing.T) {
	c := New(5)
	defer c.Close()

	c.StepTo(3)
	c.Play()
	c.Reset(8)

	assert.Equal(t, 0, c.Index())
	assert.False(t, c.Playing())
	assert.False(t, c.Pending())

	c.StepTo(7)
	assert.Equal(t, 7, c.Index())
}

func TestOnStepCallback(t *testing.T) {
	c := New(5)
	defer c.Close()

	var mu sync.Mutex
	var got []int
	c.OnStep(func(index int, playing bool) {
		mu.Lock()
		got = append(got, index)
		mu.Unlock()
	})

	c.StepTo(2)
	c.StepTo(4)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{2, 4}, got)
}

func TestZeroStepsNeverPlays(t *testing.T) {
	c := New(0)
	defer c.Close()

	c.Play()
	assert.False(t, c.Playing())
	assert.Equal(t, 0, c.Index())

	c.StepTo(5)
	assert.Equal(t, 0, c.Index())
}
