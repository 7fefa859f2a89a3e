package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageWindow(t *testing.T) {
	cases := []struct {
		name    string
		current int
		total   int
		want    []int
	}{
		{"single page", 1, 1, []int{1}},
		{"all shown when five or fewer", 2, 4, []int{1, 2, 3, 4}},
		{"exactly five", 5, 5, []int{1, 2, 3, 4, 5}},
		{"clamped at start", 1, 12, []int{1, 2, 3, 4, 5}},
		{"near start", 3, 12, []int{1, 2, 3, 4, 5}},
		{"centred", 6, 12, []int{4, 5, 6, 7, 8}},
		{"near end", 10, 12, []int{8, 9, 10, 11, 12}},
		{"clamped at end", 12, 12, []int{8, 9, 10, 11, 12}},
		{"zero total treated as one", 1, 0, []int{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageWindow(tc.current, tc.total))
		})
	}
}
