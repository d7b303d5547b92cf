package systems_test

import (
	"testing"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockRegenForNeverShortens(t *testing.T) {
	f := newFixture()
	e, _ := f.spawn(config.ProfilePlayer, 100, 0, 1)
	f.runUntil(ms(100))

	systems.BlockRegenFor(e, ms(500))
	r := components.Resources.Get(e)
	want := ms(600) + config.Combat.RegenResumeDelay
	require.Equal(t, want, r.RegenBlockedUntil)

	systems.BlockRegenFor(e, ms(100))
	assert.Equal(t, want, r.RegenBlockedUntil)

	systems.AddStamina(e, -30)
	f.runUntil(want - frame)
	assert.Equal(t, 70.0, r.Stamina)

	f.runUntil(want + ms(100))
	assert.Greater(t, r.Stamina, 70.0)
}
