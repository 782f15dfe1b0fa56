package process

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	mmerrors "github.com/samuelfneumann/mmlearn/errors"
)

func defaultConfig() Config {
	return Config{
		TotalTime:    1,
		DeltaT:       0.005,
		Volatility:   2,
		InitialPrice: 100,
	}
}

func TestGenerateSeriesLength(t *testing.T) {
	configs := []Config{
		defaultConfig(),
		{TotalTime: 1, DeltaT: 0.001, Volatility: 0.3, InitialPrice: 50},
		{TotalTime: 0.25, DeltaT: 0.1, Volatility: 1, InitialPrice: 10},
		{TotalTime: 2, DeltaT: 2, Volatility: 1, InitialPrice: 1, Drift: 0.2},
	}
	want := []int{201, 1001, 3, 2}

	for i, c := range configs {
		b, err := NewBrownian(c, rand.NewSource(uint64(i)))
		require.NoError(t, err)

		series := b.GenerateSeries()
		assert.Len(t, series, want[i])
		assert.Equal(t, c.InitialPrice, series[0])
	}
}

func TestGenerateSeriesIsFresh(t *testing.T) {
	b, err := NewBrownian(defaultConfig(), rand.NewSource(1))
	require.NoError(t, err)

	first := append([]float64(nil), b.GenerateSeries()...)
	second := b.GenerateSeries()

	assert.Equal(t, first[0], second[0])
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, b.Series())
	assert.Equal(t, second[len(second)-1], b.Price())
}

func TestGenerateSeriesSeeded(t *testing.T) {
	b1, err := NewBrownian(defaultConfig(), rand.NewSource(42))
	require.NoError(t, err)
	b2, err := NewBrownian(defaultConfig(), rand.NewSource(42))
	require.NoError(t, err)

	assert.Equal(t, b1.GenerateSeries(), b2.GenerateSeries())
}

func TestZeroVolatilityIsConstant(t *testing.T) {
	c := defaultConfig()
	c.Volatility = 0
	b, err := NewBrownian(c, rand.NewSource(3))
	require.NoError(t, err)

	for _, price := range b.GenerateSeries() {
		assert.Equal(t, 100.0, price)
	}
}

func TestDriftIsAdditive(t *testing.T) {
	c := defaultConfig()
	c.Volatility = 0
	c.Drift = 10
	b, err := NewBrownian(c, rand.NewSource(3))
	require.NoError(t, err)

	series := b.GenerateSeries()
	assert.InDelta(t, 110.0, series[len(series)-1], 1e-9)
	assert.InDelta(t, 100.05, series[1], 1e-12)
}

func TestInvalidConfig(t *testing.T) {
	bad := []Config{
		{TotalTime: 1, DeltaT: 0, Volatility: 1, InitialPrice: 1},
		{TotalTime: 1, DeltaT: -0.1, Volatility: 1, InitialPrice: 1},
		{TotalTime: 0, DeltaT: 0.1, Volatility: 1, InitialPrice: 1},
		{TotalTime: 0.05, DeltaT: 0.1, Volatility: 1, InitialPrice: 1},
		{TotalTime: 1, DeltaT: 0.1, Volatility: -1, InitialPrice: 1},
		{TotalTime: 1, DeltaT: 0.1, Volatility: 1, InitialPrice: 0},
	}

	for _, c := range bad {
		_, err := NewBrownian(c, rand.NewSource(1))
		assert.ErrorIs(t, err, mmerrors.ErrInvalidConfig, "config %+v", c)
	}
}

func TestSaveLoadSeries(t *testing.T) {
	b, err := NewBrownian(defaultConfig(), rand.NewSource(7))
	require.NoError(t, err)
	series := b.GenerateSeries()

	filename := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, SaveSeries(filename, series))

	loaded, err := LoadSeries(filename, DefaultSeparator)
	require.NoError(t, err)
	assert.Equal(t, series, loaded)
}

func TestReadSeriesDelimited(t *testing.T) {
	in := bytes.NewBufferString("100:101.5\n99.25\n\n")
	series, err := ReadSeries(in, ":")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101.5, 99.25}, series)

	_, err = ReadSeries(bytes.NewBufferString("1\n"), "::")
	assert.Error(t, err)
}

func TestReplay(t *testing.T) {
	_, err := NewReplay([]float64{1})
	assert.ErrorIs(t, err, mmerrors.ErrInvalidConfig)

	src := []float64{100, 101, 102}
	r, err := NewReplay(src)
	require.NoError(t, err)

	s := r.GenerateSeries()
	s[0] = -1
	assert.Equal(t, src, r.GenerateSeries())
	assert.Equal(t, 3, r.Len())
}
