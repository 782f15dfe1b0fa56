package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/mmlearn/environment"
	mmerrors "github.com/samuelfneumann/mmlearn/errors"
	"github.com/samuelfneumann/mmlearn/process"
)

var (
	_ environment.Environment = &Inventory{}
	_ environment.Environment = &InventoryTime{}
)

func newProcess(t *testing.T, src rand.Source) *process.Brownian {
	p, err := process.NewBrownian(process.Config{
		TotalTime:    1,
		DeltaT:       0.005,
		Volatility:   2,
		InitialPrice: 100,
	}, src)
	require.NoError(t, err)
	return p
}

// constantProcess replays a flat price path of the given length
func constantProcess(t *testing.T, price float64, length int) PriceProcess {
	series := make([]float64, length)
	for i := range series {
		series[i] = price
	}
	p, err := process.NewReplay(series)
	require.NoError(t, err)
	return p
}

func TestInventoryBucket(t *testing.T) {
	cases := map[int]Bucket{
		-100: DeepShort,
		-5:   DeepShort,
		-4:   DeepShort,
		-3:   ModerateShort,
		-2:   SlightShort,
		-1:   SlightShort,
		0:    Neutral,
		1:    SlightLong,
		2:    SlightLong,
		3:    ModerateLong,
		4:    ModerateLong,
		5:    DeepLong,
		100:  DeepLong,
	}
	for inventory, want := range cases {
		assert.Equal(t, want, InventoryBucket(inventory), "inventory %d",
			inventory)
	}

	for q := -50; q <= 50; q++ {
		b := InventoryBucket(q)
		assert.True(t, b >= 0 && b < NumBuckets)
	}
}

func TestDecodeAction(t *testing.T) {
	c := DefaultConfig()
	for a := 0; a < c.Actions; a++ {
		dBid, dAsk := c.DecodeAction(a)
		assert.Equal(t, a/3, dBid)
		assert.Equal(t, a%3, dAsk)
		assert.Equal(t, a, c.EncodeAction(dBid, dAsk))
	}
}

func TestFillProbabilityDecays(t *testing.T) {
	f := NewFillModel(FillConfig{Intensity: 140, Decay: 1.5}, 0.005,
		rand.NewSource(1))

	assert.InDelta(t, 0.7, f.Probability(0), 1e-12)
	assert.Greater(t, f.Probability(0), f.Probability(1))
	assert.Greater(t, f.Probability(1), f.Probability(2))

	f = NewFillModel(FillConfig{Intensity: 1e6, Decay: 0}, 0.005, nil)
	assert.Equal(t, 1.0, f.Probability(5))
}

func TestInvalidConfig(t *testing.T) {
	mutations := []func(*Config){
		func(c *Config) { c.DeltaT = 0 },
		func(c *Config) { c.TotalTime = -1 },
		func(c *Config) { c.TotalTime = 0.001 },
		func(c *Config) { c.Actions = 0 },
		func(c *Config) { c.Actions = 8 },
		func(c *Config) { c.Tick = -0.1 },
		func(c *Config) { c.Discount = 1.5 },
		func(c *Config) { c.Fill.Intensity = -1 },
		func(c *Config) { c.WealthWeight = math.NaN() },
	}

	for i, mutate := range mutations {
		c := DefaultConfig()
		mutate(&c)
		src := rand.NewSource(uint64(i))
		_, _, err := NewInventory(c, newProcess(t, src), src)
		assert.ErrorIs(t, err, mmerrors.ErrInvalidConfig, "mutation %d", i)
	}

	c := DefaultConfig()
	c.TimeBinSize = 0
	src := rand.NewSource(1)
	_, _, err := NewInventoryTime(c, newProcess(t, src), src)
	assert.ErrorIs(t, err, mmerrors.ErrInvalidConfig)
}

func TestShortPathRejected(t *testing.T) {
	src := rand.NewSource(1)
	_, _, err := NewInventory(DefaultConfig(), constantProcess(t, 100, 150),
		src)
	assert.ErrorIs(t, err, mmerrors.ErrInvalidConfig)
}

func TestFirstPathIsFirstGenerated(t *testing.T) {
	env, _, err := NewInventory(DefaultConfig(),
		newProcess(t, rand.NewSource(7)), rand.NewSource(8))
	require.NoError(t, err)

	want := newProcess(t, rand.NewSource(7)).GenerateSeries()
	assert.Equal(t, want, env.Series())
}

func TestResetIsNeutral(t *testing.T) {
	src := rand.NewSource(5)
	env, first, err := NewInventory(DefaultConfig(), newProcess(t, src), src)
	require.NoError(t, err)

	assert.True(t, first.First())
	assert.Equal(t, int(Neutral), first.Observation)
	assert.Equal(t, 1000.0, first.Wealth)

	// Move the book around, then reset again
	for i := 0; i < 50; i++ {
		env.Step(2)
	}
	step := env.Reset()
	assert.Equal(t, int(Neutral), step.Observation)
	assert.Equal(t, 0, env.Position())
	assert.Equal(t, 1000.0, env.Cash())
	assert.Equal(t, 0.0, env.Elapsed())
	assert.Equal(t, 100.0, env.Price())

	timeEnv, first, err := NewInventoryTime(DefaultConfig(),
		newProcess(t, src), src)
	require.NoError(t, err)
	_, bucket := SplitState(first.Observation)
	assert.Equal(t, Neutral, bucket)
	assert.Equal(t, timeEnv.Reset().Observation, first.Observation)
}

func TestEpisodeTerminatesOnTime(t *testing.T) {
	src := rand.NewSource(11)
	c := DefaultConfig()
	env, _, err := NewInventoryTime(c, newProcess(t, src), src)
	require.NoError(t, err)

	for episode := 0; episode < 3; episode++ {
		env.Reset()
		for i := 1; i <= c.Steps(); i++ {
			step, done := env.Step(i % c.Actions)
			assert.Equal(t, i, step.Number)
			assert.Equal(t, i == c.Steps(), done, "step %d", i)
			assert.Equal(t, done, step.Last())
			assert.True(t, env.ObservationSpec().Contains(step.Observation),
				"state %d out of range", step.Observation)
			assert.False(t, math.IsNaN(step.Reward) ||
				math.IsInf(step.Reward, 0))
		}
	}

	assert.Panics(t, func() { env.Step(0) })
}

func TestIllegalActionPanics(t *testing.T) {
	src := rand.NewSource(1)
	env, _, err := NewInventory(DefaultConfig(), newProcess(t, src), src)
	require.NoError(t, err)

	assert.Panics(t, func() { env.Step(-1) })
	assert.Panics(t, func() { env.Step(9) })
}

func TestTimeStates(t *testing.T) {
	src := rand.NewSource(2)
	c := DefaultConfig()
	c.Fill.Intensity = 0 // no fills, inventory stays neutral
	env, first, err := NewInventoryTime(c, constantProcess(t, 100, 201), src)
	require.NoError(t, err)

	assert.Equal(t, 10, env.TimeBins())
	assert.Equal(t, 70, env.ObservationSpec().Size)

	bin, _ := SplitState(first.Observation)
	assert.Equal(t, 9, bin)

	bins := []int{}
	for {
		step, done := env.Step(0)
		bin, bucket := SplitState(step.Observation)
		assert.Equal(t, Neutral, bucket)
		bins = append(bins, bin)
		if done {
			break
		}
	}
	assert.Equal(t, 9, bins[0])   // 199 steps left
	assert.Equal(t, 9, bins[18])  // 181 steps left
	assert.Equal(t, 8, bins[19])  // 180 steps left
	assert.Equal(t, 0, bins[198]) // 1 step left
	assert.Equal(t, 0, bins[199]) // terminal
}

func TestRewardWithoutFills(t *testing.T) {
	src := rand.NewSource(4)
	c := DefaultConfig()
	c.Fill.Intensity = 0
	env, _, err := NewInventory(c, newProcess(t, src), src)
	require.NoError(t, err)

	for {
		step, done := env.Step(4)
		assert.Equal(t, 0.0, step.Reward)
		assert.Equal(t, 0, step.Inventory)
		assert.Equal(t, 1000.0, step.Wealth)
		if done {
			break
		}
	}
}

func TestRewardBidFillsOnly(t *testing.T) {
	// The bid at the touch always fills while the ask two ticks away
	// never does, so the agent buys one unit per step
	src := rand.NewSource(4)
	c := DefaultConfig()
	c.Fill = FillConfig{Intensity: 1 / c.DeltaT, Decay: 1000}
	c.TotalTime = 0.02 // 4 steps
	env, _, err := NewInventory(c, constantProcess(t, 100, 5), src)
	require.NoError(t, err)

	action := c.EncodeAction(0, 2)
	for i := 0; i < c.Steps(); i++ {
		remaining := c.TotalTime - float64(i)*c.DeltaT
		step, done := env.Step(action)

		assert.Equal(t, i+1, step.Inventory)
		assert.Equal(t, 1, step.Fills)
		assert.InDelta(t, math.Exp(c.InventoryDecay*remaining), step.Reward,
			1e-12)
		assert.InDelta(t, 1000.0, step.Wealth, 1e-9)
		assert.InDelta(t, 1000-float64(i+1)*100, env.Cash(), 1e-9)
		assert.Equal(t, i == c.Steps()-1, done)
	}
	assert.Equal(t, int(ModerateLong), env.LastTimeStep().Observation)
}

func TestRewardCapturesSpread(t *testing.T) {
	// Both quotes one tick away always fill: inventory is unchanged and
	// the agent earns the spread of two ticks
	src := rand.NewSource(4)
	c := DefaultConfig()
	c.Fill = FillConfig{Intensity: 1e6, Decay: 0}
	env, _, err := NewInventory(c, newProcess(t, src), src)
	require.NoError(t, err)

	step, _ := env.Step(c.EncodeAction(1, 1))
	assert.Equal(t, 0, step.Inventory)
	assert.Equal(t, 2, step.Fills)
	assert.InDelta(t, c.WealthWeight*2*c.Tick, step.Reward, 1e-9)
	assert.InDelta(t, 1000+2*c.Tick, env.Cash(), 1e-9)
}

func TestRewardSellAndPriceMove(t *testing.T) {
	// Quotes at the touch always fill and quotes two ticks away never
	// do. The agent buys, holds through a price move, sells, then holds
	// flat through a price move.
	src := rand.NewSource(4)
	c := DefaultConfig()
	c.Fill = FillConfig{Intensity: 1 / c.DeltaT, Decay: 1000}
	c.TotalTime = 0.02 // 4 steps
	p, err := process.NewReplay([]float64{100, 101, 103, 98, 98})
	require.NoError(t, err)
	env, _, err := NewInventory(c, p, src)
	require.NoError(t, err)

	a, b := c.WealthWeight, c.InventoryDecay
	cases := []struct {
		action    int
		inventory int
		fills     int
		reward    float64
		wealth    float64
	}{
		// Buy at 100, marked at 101
		{c.EncodeAction(0, 2), 1, 1, a*1 + math.Exp(b*0.02), 1001},
		// Hold one unit while the price moves from 101 to 103
		{c.EncodeAction(2, 2), 1, 0, a * 2, 1003},
		// Sell at 103, flat while the price drops to 98
		{c.EncodeAction(2, 0), 0, 1, -math.Exp(b * 0.01), 1003},
		// Flat on the last step
		{c.EncodeAction(2, 2), 0, 0, 0, 1003},
	}

	for i, want := range cases {
		step, done := env.Step(want.action)
		assert.Equal(t, want.inventory, step.Inventory, "step %d", i)
		assert.Equal(t, want.fills, step.Fills, "step %d", i)
		assert.InDelta(t, want.reward, step.Reward, 1e-9, "step %d", i)
		assert.InDelta(t, want.wealth, step.Wealth, 1e-9, "step %d", i)
		assert.Equal(t, i == len(cases)-1, done)
	}
}

func TestTerminalUtility(t *testing.T) {
	c := DefaultConfig()
	c.Fill = FillConfig{Intensity: 1 / c.DeltaT, Decay: 1000}
	c.TotalTime = 0.01 // 2 steps
	action := c.EncodeAction(0, 2)

	run := func(opts ...Option) []float64 {
		env, _, err := NewInventory(c, constantProcess(t, 100, 3),
			rand.NewSource(1), opts...)
		require.NoError(t, err)

		rewards := []float64{}
		for {
			step, done := env.Step(action)
			rewards = append(rewards, step.Reward)
			if done {
				return rewards
			}
		}
	}

	plain := run()
	shaped := run(WithTerminalUtility(InventoryAversion(0.1)))

	assert.Equal(t, plain[0], shaped[0])
	assert.InDelta(t, plain[1]*math.Exp(-0.2), shaped[1], 1e-12)
}

func TestZeroTickEpisodeIsFinite(t *testing.T) {
	src := rand.NewSource(2024)
	c := DefaultConfig()
	env, _, err := NewInventoryTime(c, newProcess(t, src), src)
	require.NoError(t, err)

	env.Reset()
	steps := 0
	for {
		step, done := env.Step(0)
		steps++
		if done {
			assert.False(t, math.IsNaN(step.Wealth))
			assert.False(t, math.IsInf(step.Wealth, 0))
			break
		}
	}
	assert.Equal(t, 200, steps)
	assert.Len(t, env.Series(), 201)
}
