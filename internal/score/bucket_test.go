package score

import "testing"

// Scores of 3 and above cannot be produced through Task (the base bonus caps
// at 2 and reassignments subtract), so the High edge of the mapping is
// checked directly.
func TestBucketFor(t *testing.T) {
	tests := []struct {
		score int
		want  Bucket
	}{
		{5, BucketHigh},
		{4, BucketHigh},
		{3, BucketHigh},
		{2, BucketMedium},
		{1, BucketLow},
		{0, BucketLow},
		{-3, BucketLow},
	}
	for _, tt := range tests {
		if got := bucketFor(tt.score); got != tt.want {
			t.Errorf("bucketFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
