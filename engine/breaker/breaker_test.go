package breaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker_ClosedStaysClosedOnSuccess(t *testing.T) {
	b := New(2, time.Second)
	require.True(t, b.Check())
	b.ReportFailure()
	b.ReportSuccess()
	require.Equal(t, Closed, b.State())
	require.True(t, b.Check())
}

func TestBreaker_TripsOpenAtThreshold(t *testing.T) {
	var transitions []Transition
	b := New(2, time.Second, WithOnTransition(func(tr Transition) {
		transitions = append(transitions, tr)
	}))

	require.True(t, b.Check())
	b.ReportFailure()
	assert.Equal(t, Closed, b.State())

	require.True(t, b.Check())
	b.ReportFailure()
	assert.Equal(t, Open, b.State())

	require.False(t, b.Check(), "breaker must gate once the threshold trips")
	require.Len(t, transitions, 1)
	assert.Equal(t, Closed, transitions[0].From)
	assert.Equal(t, Open, transitions[0].To)
}

func TestBreaker_HalfOpenAdmitsExactlyOneProbe(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	b := New(1, time.Second, WithClock(clock))

	b.Check()
	b.ReportFailure() // trips open
	require.Equal(t, Open, b.State())

	require.False(t, b.Check(), "still within cooldown")

	now = now.Add(2 * time.Second)
	require.True(t, b.Check(), "cooldown elapsed: admits exactly one probe")
	require.Equal(t, HalfOpen, b.State())

	require.False(t, b.Check(), "a second concurrent caller must not get another probe")
}

func TestBreaker_HalfOpenProbeSuccessCloses(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	b := New(1, time.Second, WithClock(clock))

	b.Check()
	b.ReportFailure()
	now = now.Add(2 * time.Second)
	require.True(t, b.Check())
	require.Equal(t, HalfOpen, b.State())

	b.ReportSuccess()
	require.Equal(t, Closed, b.State())
	require.True(t, b.Check())
}

func TestBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	b := New(1, time.Second, WithClock(clock))

	b.Check()
	b.ReportFailure()
	now = now.Add(2 * time.Second)
	require.True(t, b.Check())
	require.Equal(t, HalfOpen, b.State())

	b.ReportFailure()
	require.Equal(t, Open, b.State())
	require.False(t, b.Check(), "still within the fresh cooldown")

	now = now.Add(2 * time.Second)
	require.True(t, b.Check(), "exactly one probe per cooldown window")
}
