package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGateFirstOccurrenceNeverSuppressed(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 60*time.Second)
	now := time.Now()

	assert.False(t, gate.ShouldSuppress(Key("whole_milk", "back_room"), now))
}

func TestGateSuppressesWithinWindow(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 60*time.Second)
	key := Key("whole_milk", "back_room")
	now := time.Now()

	gate.RecordFired(key, now)

	assert.True(t, gate.ShouldSuppress(key, now.Add(30*time.Second)))
	assert.True(t, gate.ShouldSuppress(key, now.Add(59*time.Second)))
}

func TestGateAllowsAfterWindowElapsed(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 60*time.Second)
	key := Key("whole_milk", "back_room")
	now := time.Now()

	gate.RecordFired(key, now)

	assert.False(t, gate.ShouldSuppress(key, now.Add(60*time.Second)))
	assert.False(t, gate.ShouldSuppress(key, now.Add(5*time.Minute)))
}

func TestGateKeysAreIndependent(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 60*time.Second)
	now := time.Now()

	gate.RecordFired(Key("whole_milk", "back_room"), now)

	assert.False(t, gate.ShouldSuppress(Key("whole_milk", "front"), now.Add(time.Second)))
	assert.False(t, gate.ShouldSuppress(Key("oat_milk", "back_room"), now.Add(time.Second)))
}

func TestGateZeroWindowDefaults(t *testing.T) {
	gate := NewGate(NewMemoryStore(), 0)
	key := Key("eggs", "")
	now := time.Now()

	gate.RecordFired(key, now)

	assert.True(t, gate.ShouldSuppress(key, now.Add(DefaultWindow-time.Second)))
	assert.False(t, gate.ShouldSuppress(key, now.Add(DefaultWindow)))
}
