package shared

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tc := []struct {
		name    string
		seconds float64
		want    string
	}{
		{
			name:    "zero",
			seconds: 0,
			want:    "0:00",
		},
		{
			name:    "under a minute",
			seconds: 42.5,
			want:    "0:42",
		},
		{
			name:    "minutes and seconds",
			seconds: 125,
			want:    "2:05",
		},
		{
			name:    "over an hour",
			seconds: 3725,
			want:    "1:02:05",
		},
		{
			name:    "negative clamps to zero",
			seconds: -3,
			want:    "0:00",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimestamp(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()
	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Errorf("expected distinct ids, got %s twice", a)
	}
}
