package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKFactors(t *testing.T) {
	userCases := map[int]int{0: 32, 4: 32, 5: 31, 49: 23, 80: 16, 1000: 16, -3: 32}
	for attempts, want := range userCases {
		assert.Equal(t, want, UserKFactor(attempts), "user attempts=%d", attempts)
	}

	challengeCases := map[int]int{0: 32, 9: 32, 10: 31, 150: 17, 200: 12, 5000: 12}
	for attempts, want := range challengeCases {
		assert.Equal(t, want, ChallengeKFactor(attempts), "challenge attempts=%d", attempts)
	}
}

func TestExpectedScore(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(1500, 1500), 1e-9)
	assert.InDelta(t, 0.2403, ExpectedScore(1200, 1400), 1e-4)
	assert.InDelta(t, 0.2966, ExpectedScore(1200, 1350), 1e-4)
	assert.InDelta(t, 1.0, ExpectedScore(1200, 1400)+ExpectedScore(1400, 1200), 1e-9)
}

func TestComputeRatingUpdate(t *testing.T) {
	tests := []struct {
		name          string
		in            RatingInput
		wantUser      int
		wantChallenge int
		wantPassCount int
	}{
		{
			name:          "new user passes hard challenge",
			in:            RatingInput{UserRating: 1200, ChallengeRating: 1400, Passed: true},
			wantUser:      1224,
			wantChallenge: 1376,
			wantPassCount: 1,
		},
		{
			name:          "150 point gap",
			in:            RatingInput{UserRating: 1200, ChallengeRating: 1350, Passed: true},
			wantUser:      1223,
			wantChallenge: 1327,
			wantPassCount: 1,
		},
		{
			name:          "new user fails hard challenge",
			in:            RatingInput{UserRating: 1200, ChallengeRating: 1400, Passed: false},
			wantUser:      1192,
			wantChallenge: 1408,
			wantPassCount: 0,
		},
		{
			name:          "mature entities move slower",
			in:            RatingInput{UserRating: 1250, UserAttempts: 40, ChallengeRating: 1200, ChallengeAttempts: 100, ChallengePassCount: 30},
			wantUser:      1236,
			wantChallenge: 1213,
			wantPassCount: 30,
		},
		{
			name:          "even match asymmetric k",
			in:            RatingInput{UserRating: 1500, UserAttempts: 200, ChallengeRating: 1500, ChallengeAttempts: 500, Passed: true},
			wantUser:      1508,
			wantChallenge: 1494,
			wantPassCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRatingUpdate(tt.in)
			assert.Equal(t, tt.wantUser, got.UserRating)
			assert.Equal(t, tt.wantChallenge, got.ChallengeRating)
			assert.Equal(t, tt.in.UserAttempts+1, got.UserAttempts)
			assert.Equal(t, tt.in.ChallengeAttempts+1, got.ChallengeAttempts)
			assert.Equal(t, tt.wantPassCount, got.ChallengePassCount)
			assert.Equal(t, got.UserRating-tt.in.UserRating, got.UserDelta)
			assert.Equal(t, got.ChallengeRating-tt.in.ChallengeRating, got.ChallengeDelta)
		})
	}
}

func TestComputeRatingUpdateDeterministic(t *testing.T) {
	in := RatingInput{UserRating: 1317, UserAttempts: 12, ChallengeRating: 1288, ChallengeAttempts: 33, Passed: true}
	assert.Equal(t, ComputeRatingUpdate(in), ComputeRatingUpdate(in))
}

func TestComputeRatingUpdateStaysInRange(t *testing.T) {
	extremes := []int{MinRating, -5000, 0, 1200, 5000, MaxRating}
	for _, u := range extremes {
		for _, c := range extremes {
			for _, passed := range []bool{true, false} {
				got := ComputeRatingUpdate(RatingInput{UserRating: u, ChallengeRating: c, Passed: passed})
				assert.GreaterOrEqual(t, got.UserRating, MinRating)
				assert.LessOrEqual(t, got.UserRating, MaxRating)
				assert.GreaterOrEqual(t, got.ChallengeRating, MinRating)
				assert.LessOrEqual(t, got.ChallengeRating, MaxRating)
				assert.False(t, math.IsNaN(got.Expected))
				assert.Equal(t, 1, got.UserAttempts)
				assert.Equal(t, 1, got.ChallengeAttempts)
			}
		}
	}
}
