package lookup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointconfig/domain/core"
	"pointconfig/domain/geometry"
	"pointconfig/internal"
)

func TestCacheSharesOneTablePerSpace(t *testing.T) {
	cache := NewCache(internal.NewNopLogger())
	s53 := geometry.Space{Prime: 5, Dimension: 3}
	s73 := geometry.Space{Prime: 7, Dimension: 3}

	first, built, err := cache.Lookup(s53)
	require.NoError(t, err)
	assert.True(t, built)
	assert.Equal(t, 1, cache.Len())

	second, built, err := cache.Lookup(s53)
	require.NoError(t, err)
	assert.False(t, built)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	third, built, err := cache.Lookup(s73)
	require.NoError(t, err)
	assert.True(t, built)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, 2, cache.Builds())
}

func TestCacheConcurrentBuildHappensOnce(t *testing.T) {
	cache := NewCache(internal.NewNopLogger())
	space := geometry.Space{Prime: 7, Dimension: 3}

	const callers = 16
	tables := make([]*Table, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := cache.GetOrBuild(space)
			assert.NoError(t, err)
			tables[i] = table
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Builds())
	for _, table := range tables {
		assert.Same(t, tables[0], table)
	}
}

func TestCacheRejectsInvalidSpace(t *testing.T) {
	cache := NewCache(internal.NewNopLogger())
	_, err := cache.GetOrBuild(geometry.Space{Prime: 6, Dimension: 3})
	assert.True(t, core.IsValidationError(err))
	assert.Zero(t, cache.Len())
}

func TestCacheRejectsOversizedSpace(t *testing.T) {
	cache := NewCache(internal.NewNopLogger())
	space := geometry.Space{Prime: 1451, Dimension: 6}

	for i := 0; i < 2; i++ {
		table, err := cache.GetOrBuild(space)
		assert.Nil(t, table)
		assert.True(t, core.IsValidationError(err))
	}
	assert.Zero(t, cache.Len())

	_, err := Build(space)
	assert.True(t, core.IsValidationError(err))
}

func TestCacheDropsFailedBuilds(t *testing.T) {
	space := geometry.Space{Prime: 3, Dimension: 2}

	tests := []struct {
		name  string
		build func(geometry.Space) (*Table, error)
	}{
		{"panic", func(geometry.Space) (*Table, error) { panic("makeslice: len out of range") }},
		{"nil table", func(geometry.Space) (*Table, error) { return nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewCache(internal.NewNopLogger())
			cache.build = tt.build

			table, err := cache.GetOrBuild(space)
			require.Error(t, err)
			assert.Nil(t, table)
			assert.Zero(t, cache.Len())
			assert.Zero(t, cache.Builds())

			cache.build = Build
			table, err = cache.GetOrBuild(space)
			require.NoError(t, err)
			require.NotNil(t, table)
			assert.Equal(t, 1, cache.Builds())
		})
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(internal.NewNopLogger())
	space := geometry.Space{Prime: 3, Dimension: 2}

	before, err := cache.GetOrBuild(space)
	require.NoError(t, err)
	cache.Clear()
	assert.Zero(t, cache.Len())

	after, err := cache.GetOrBuild(space)
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Equal(t, before.Plane(4, 2), after.Plane(4, 2))
}

func TestTableMatchesIndexMath(t *testing.T) {
	space := geometry.Space{Prime: 5, Dimension: 3}
	table, err := Build(space)
	require.NoError(t, err)

	assert.Equal(t, space, table.Space())
	assert.Equal(t, space.TotalPoints()*space.TotalDirections(), table.Cells())
	for x := 0; x < space.TotalPoints(); x++ {
		planes := table.PlaneRow(x)
		lines := table.LineRow(x)
		require.Len(t, planes, space.TotalDirections())
		for d := 0; d < space.TotalDirections(); d++ {
			assert.Equal(t, geometry.PlaneInterceptByIndex(space, x, d), table.Plane(x, d))
			assert.Equal(t, geometry.LineInterceptByIndex(space, x, d), table.Line(x, d))
			assert.Equal(t, table.Plane(x, d), int(planes[d]))
			assert.Equal(t, table.Line(x, d), int(lines[d]))
		}
	}
}
