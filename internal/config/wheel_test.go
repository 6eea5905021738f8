package config

import "testing"

func TestColorOf(t *testing.T) {
	cases := []struct {
		position int
		want     Color
	}{
		{0, White},
		{1, Red}, {3, Red}, {5, Red}, {8, Red}, {10, Red}, {12, Red},
		{2, Black}, {4, Black}, {6, Black}, {7, Black}, {9, Black}, {11, Black},
		{13, None},
		{-1, None},
	}

	for _, tc := range cases {
		if got := ColorOf(tc.position); got != tc.want {
			t.Errorf("ColorOf(%d) = %s, want %s", tc.position, got, tc.want)
		}
	}
}
