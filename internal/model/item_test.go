package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoodBonusEffective(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name  string
		bonus FoodBonus
		base  int
		hq    bool
		want  int
	}

	testCases := []testCase{
		{
			name: "RelativeBelowCap",
			// 2% of 1000 = 20, under the 45 cap.
			bonus: FoodBonus{Relative: true, Value: 2, Max: 45, ValueHq: 2, MaxHq: 56},
			base:  1000,
			hq:    false,
			want:  20,
		},
		{
			name:  "RelativeFloorsBeforeClamping",
			bonus: FoodBonus{Relative: true, Value: 3, Max: 45},
			// 3% of 1555 = 46.65 floors to 46, then clamps to 45.
			base: 1555,
			hq:   false,
			want: 45,
		},
		{
			name:  "RelativeClampsAtCap",
			bonus: FoodBonus{Relative: true, Value: 10, Max: 45, ValueHq: 12, MaxHq: 56},
			base:  5000,
			hq:    false,
			want:  45,
		},
		{
			name:  "HqUsesHqPair",
			bonus: FoodBonus{Relative: true, Value: 10, Max: 45, ValueHq: 12, MaxHq: 56},
			base:  5000,
			hq:    true,
			want:  56,
		},
		{
			name: "FlatIgnoresCap",
			// A flat bonus grants the raw value even when a stale cap
			// column says otherwise.
			bonus: FoodBonus{Relative: false, Value: 30, Max: 10},
			base:  9999,
			hq:    false,
			want:  30,
		},
		{
			name:  "FlatHq",
			bonus: FoodBonus{Relative: false, Value: 30, ValueHq: 40},
			base:  0,
			hq:    true,
			want:  40,
		},
		{
			name:  "ZeroBaseRelative",
			bonus: FoodBonus{Relative: true, Value: 8, Max: 90},
			base:  0,
			hq:    false,
			want:  0,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.bonus.Effective(tc.base, tc.hq))
		})
	}
}

func TestItemNamesEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, ItemNames{}.Empty())
	assert.False(t, ItemNames{JA: "ギル"}.Empty())
}
