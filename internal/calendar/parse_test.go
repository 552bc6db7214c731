package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/papapumpkin/bazi/internal/chart"
)

func TestParseMoment(t *testing.T) {
	t.Parallel()

	shanghai := time.FixedZone("CST", 8*3600)
	tests := []struct {
		name string
		in   string
		kind chart.CalendarKind
		want chart.Moment
	}{
		{
			name: "numeric with time",
			in:   "1996-05-07 15:00",
			kind: chart.Solar,
			want: chart.Moment{Calendar: chart.Solar, Year: 1996, Month: 5, Day: 7, Hour: 15},
		},
		{
			name: "slashes and seconds",
			in:   "1996/5/7 15:04:05",
			kind: chart.Solar,
			want: chart.Moment{Calendar: chart.Solar, Year: 1996, Month: 5, Day: 7, Hour: 15, Minute: 4, Second: 5},
		},
		{
			name: "date only",
			in:   "1996-05-07",
			kind: chart.Solar,
			want: chart.Moment{Calendar: chart.Solar, Year: 1996, Month: 5, Day: 7},
		},
		{
			name: "nonexistent day kept as written",
			in:   "2023-02-30 08:00",
			kind: chart.Solar,
			want: chart.Moment{Calendar: chart.Solar, Year: 2023, Month: 2, Day: 30, Hour: 8},
		},
		{
			name: "lunar leap marker",
			in:   "2023-闰02-15 10:30",
			kind: chart.Lunar,
			want: chart.Moment{Calendar: chart.Lunar, Year: 2023, Month: 2, Day: 15, Hour: 10, Minute: 30, Leap: true},
		},
		{
			name: "lunar ascii leap marker",
			in:   "2023-L2-15",
			kind: chart.Lunar,
			want: chart.Moment{Calendar: chart.Lunar, Year: 2023, Month: 2, Day: 15, Leap: true},
		},
		{
			name: "rfc3339 converted into zone",
			in:   "1996-05-07T07:00:00Z",
			kind: chart.Solar,
			want: chart.Moment{Calendar: chart.Solar, Year: 1996, Month: 5, Day: 7, Hour: 15},
		},
		{
			name: "month name layout",
			in:   "May 7, 1996 3:00:00 PM",
			kind: chart.Solar,
			want: chart.Moment{Calendar: chart.Solar, Year: 1996, Month: 5, Day: 7, Hour: 15},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMoment(tt.in, tt.kind, shanghai)
			if err != nil {
				t.Fatalf("ParseMoment(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMoment(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMomentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		kind chart.CalendarKind
	}{
		{"garbage", "not a date", chart.Solar},
		{"leap on solar", "2023-闰02-15", chart.Solar},
		{"lunar free form", "March 3 2023", chart.Lunar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseMoment(tt.in, tt.kind, time.UTC)
			if !errors.Is(err, ErrUnparseableMoment) {
				t.Errorf("ParseMoment(%q) error = %v, want ErrUnparseableMoment", tt.in, err)
			}
		})
	}
}
