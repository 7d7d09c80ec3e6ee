package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	existing := LeaveRequest{
		StartDate: day(2026, 2, 1),
		EndDate:   day(2026, 2, 10),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"overlapping tail", day(2026, 2, 5), day(2026, 2, 15), true},
		{"adjacent after", day(2026, 2, 11), day(2026, 2, 15), false},
		{"fully inside", day(2026, 2, 3), day(2026, 2, 7), true},
		{"surrounding", day(2026, 1, 20), day(2026, 2, 20), true},
		{"same single day as end", day(2026, 2, 10), day(2026, 2, 10), true},
		{"before", day(2026, 1, 1), day(2026, 1, 31), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.start, tt.end))
		})
	}
}
