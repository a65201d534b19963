package geometry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointconfig/domain/core"
)

var spaces = []Space{
	{Prime: 2, Dimension: 1},
	{Prime: 3, Dimension: 2},
	{Prime: 3, Dimension: 4},
	{Prime: 5, Dimension: 2},
	{Prime: 5, Dimension: 3},
	{Prime: 7, Dimension: 3},
}

func TestPointRoundTrip(t *testing.T) {
	for _, s := range spaces {
		t.Run(s.String(), func(t *testing.T) {
			for i := 0; i < s.TotalPoints(); i++ {
				point, err := IndexToPoint(s, i)
				require.NoError(t, err)
				require.Len(t, point, s.Dimension)
				assert.Equal(t, i, PointToIndex(s, point))
			}
		})
	}
}

func TestDirectionRoundTrip(t *testing.T) {
	for _, s := range spaces {
		t.Run(s.String(), func(t *testing.T) {
			for d := 0; d < s.TotalDirections(); d++ {
				direction, err := IndexToDirection(s, d)
				require.NoError(t, err)
				k := DirectionSubdimension(s, d)
				assert.Equal(t, 1, direction[k], "pivot must be normalized")
				for i := k + 1; i < s.Dimension; i++ {
					assert.Zero(t, direction[i])
				}
				assert.Equal(t, d, DirectionToIndex(s, direction))
			}
		})
	}
}

func TestInterceptRoundTrip(t *testing.T) {
	for _, s := range spaces {
		for i := 0; i < s.TotalLineIntercepts(); i++ {
			components, err := IndexToIntercept(s, i)
			require.NoError(t, err)
			require.Len(t, components, s.Dimension-1)
			assert.Equal(t, i, InterceptToIndex(s, components))
		}
	}
}

func TestDirectionsOrder(t *testing.T) {
	s := Space{Prime: 3, Dimension: 3}
	expected := [][]int{{1, 0, 0}}
	for slope := 0; slope < 3; slope++ {
		expected = append(expected, []int{slope, 1, 0})
	}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			expected = append(expected, []int{a, b, 1})
		}
	}
	assert.Equal(t, expected, Directions(s))
	assert.Len(t, Directions(Space{Prime: 7, Dimension: 5}), 1+7+49+343+2401)
}

func TestOutOfRangeIndices(t *testing.T) {
	s := Space{Prime: 5, Dimension: 3}

	_, err := IndexToPoint(s, 125)
	assert.True(t, core.IsValidationError(err))
	_, err = IndexToPoint(s, -1)
	assert.True(t, core.IsValidationError(err))
	_, err = IndexToDirection(s, 31)
	assert.True(t, core.IsValidationError(err))
	_, err = IndexToIntercept(s, 25)
	assert.True(t, core.IsValidationError(err))
}

var geometricCases = []struct {
	prime     int
	point     []int
	direction []int
	plane     int
	line      []int
}{
	{7, []int{4}, []int{2}, 1, []int{}},
	{11, []int{9}, []int{12}, 9, []int{}},
	{11, []int{9}, []int{7}, 8, []int{}},
	{5, []int{2, 4}, []int{3, 1}, 0, []int{0}},
	{5, []int{2, 4, 1}, []int{1, 3, 1}, 0, []int{1, 1}},
	{11, []int{2, 6, 8, 3, 5, 1}, []int{1, 5, 75, 2, 1, 5}, 10, []int{4, 5, 4, 7, 7}},
	{11, []int{2, 6, 8, 3, 5, 1}, []int{1, 5, 75, 2, 1, 0}, 5, []int{8, 3, 7, 4, 1}},
}

func TestCoordinateIntercepts(t *testing.T) {
	for _, tc := range geometricCases {
		t.Run(fmt.Sprintf("%d/%v/%v", tc.prime, tc.point, tc.direction), func(t *testing.T) {
			assert.Equal(t, tc.plane, PlaneIntercept(tc.prime, tc.point, tc.direction))
			line, err := LineIntercept(tc.prime, tc.point, tc.direction)
			require.NoError(t, err)
			assert.Equal(t, tc.line, line)
		})
	}
}

func TestLineInterceptZeroDirection(t *testing.T) {
	_, err := LineIntercept(5, []int{3, 5, 1}, []int{5, -20, 0})
	assert.True(t, core.IsValidationError(err))
	_, err = Normalize(5, []int{0, 10, 0})
	assert.True(t, core.IsValidationError(err))
}

// The index arithmetic must agree with the coordinate formulas for every
// (point, direction) pair.
func TestIndexInterceptsMatchCoordinates(t *testing.T) {
	for _, s := range spaces {
		t.Run(s.String(), func(t *testing.T) {
			for d := 0; d < s.TotalDirections(); d++ {
				direction, err := IndexToDirection(s, d)
				require.NoError(t, err)
				for x := 0; x < s.TotalPoints(); x++ {
					point, err := IndexToPoint(s, x)
					require.NoError(t, err)

					require.Equal(t, PlaneIntercept(s.Prime, point, direction), PlaneInterceptByIndex(s, x, d))

					line, err := LineIntercept(s.Prime, point, direction)
					require.NoError(t, err)
					require.Equal(t, InterceptToIndex(s, line), LineInterceptByIndex(s, x, d))
				}
			}
		})
	}
}

// Each line holds exactly p points, each hyperplane exactly p^(n-1).
func TestInterceptsPartitionTheSpace(t *testing.T) {
	s := Space{Prime: 5, Dimension: 3}
	for d := 0; d < s.TotalDirections(); d++ {
		planes := make([]int, s.Prime)
		lines := make([]int, s.TotalLineIntercepts())
		for x := 0; x < s.TotalPoints(); x++ {
			planes[PlaneInterceptByIndex(s, x, d)]++
			lines[LineInterceptByIndex(s, x, d)]++
		}
		for _, count := range planes {
			assert.Equal(t, s.TotalLineIntercepts(), count)
		}
		for _, count := range lines {
			assert.Equal(t, s.Prime, count)
		}
	}
}

func TestNormalize(t *testing.T) {
	normalized, err := Normalize(7, []int{3, 6, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, 1}, normalized)
}
