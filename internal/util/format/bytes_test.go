package format

import "testing"

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1048576, "5.0 MB"},
		{3 * 1073741824, "3.0 GB"},
		{1099511627776, "1.0 TB"},
	}
	for _, tt := range tests {
		if got := HumanizeBytes(tt.in); got != tt.want {
			t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
