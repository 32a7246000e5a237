package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/London", Location("Europe/London").String())
}

func TestClockUsesLocation(t *testing.T) {
	now := Clock("UTC")()
	assert.Equal(t, "UTC", now.Location().String())
}
