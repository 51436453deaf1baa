package progress

import "testing"

func TestStageIndexBands(t *testing.T) {
	cases := []struct {
		progress float64
		want     int
	}{
		{0, 0},
		{12, 0},
		{12.5, 1},
		{50, 4},
		{87, 6},
		{87.5, 7},
		{99.9, 7},
		{100, 8},
	}

	for _, tc := range cases {
		if got := StageIndex(tc.progress); got != tc.want {
			t.Errorf("StageIndex(%v): got %d, want %d", tc.progress, got, tc.want)
		}
	}
}

func TestStageIndexClamps(t *testing.T) {
	if got := StageIndex(-5); got != 0 {
		t.Errorf("StageIndex(-5): got %d, want 0", got)
	}
	if got := StageIndex(250); got != StageCount {
		t.Errorf("StageIndex(250): got %d, want %d", got, StageCount)
	}
}
