package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pachinko/internal/games/pachinko"
)

func TestSimulateBatchDeterministic(t *testing.T) {
	opts := pachinko.DefaultHeadlessOptions()
	opts.Balls = 3
	opts.Seed = 40
	logger := log.New(io.Discard)

	first, err := simulateBatch(context.Background(), opts, 4, 2, logger)
	require.NoError(t, err)
	require.Len(t, first, 4)

	again, err := simulateBatch(context.Background(), opts, 4, 4, logger)
	require.NoError(t, err)
	assert.Equal(t, first, again, "worker count must not change the results")

	for i, r := range first {
		assert.Equal(t, int64(40+i), r.Seed)
		assert.Equal(t, 3, r.Launched)
	}
}

func TestSimulateBatchErrors(t *testing.T) {
	opts := pachinko.DefaultHeadlessOptions()
	logger := log.New(io.Discard)

	_, err := simulateBatch(context.Background(), opts, 0, 1, logger)
	assert.Error(t, err)

	opts.Balls = 0
	_, err = simulateBatch(context.Background(), opts, 2, 1, logger)
	assert.ErrorContains(t, err, "run 0")
}

func TestSimulateOptionsFromFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		flagLayout, flagBounce, flagSimBalls, flagSeed = "", "", 0, 0
	})

	flagLayout = "classic"
	flagBounce = "soft"
	flagSimBalls = 7
	flagSeed = 5

	opts, err := simulateOptions()
	require.NoError(t, err)
	assert.Equal(t, "classic", opts.Layout.Name)
	assert.Equal(t, 7, opts.Balls)
	assert.Equal(t, int64(5), opts.Seed)
	assert.InDelta(t, 0.6, opts.Config.Physics.Restitution.Pin, 1e-9)

	flagBounce = "bouncy"
	_, err = simulateOptions()
	assert.ErrorContains(t, err, "bouncy")

	flagBounce = ""
	flagLayout = "missing"
	_, err = simulateOptions()
	assert.Error(t, err)
}

func TestApplyGameFlagsBounce(t *testing.T) {
	t.Cleanup(func() {
		flagBounce = ""
		pachinko.SetBouncePreset("")
	})

	flagBounce = "bogus"
	assert.ErrorContains(t, applyGameFlags(), "unknown bounce preset")

	flagBounce = "wild"
	require.NoError(t, applyGameFlags())

	flagBounce = ""
	require.NoError(t, applyGameFlags())
}
