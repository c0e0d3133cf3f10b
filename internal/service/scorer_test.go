package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"account-analyze-go/internal/model"
)

func TestScoreScenarios(t *testing.T) {
	engine := NewScoreEngine()

	testCases := []struct {
		name     string
		attrs    *model.ProfileAttributes
		score    int
		category model.Category
		signals  []string
	}{
		{
			name:     "every rule fires",
			attrs:    model.NewProfileAttributes(false, 2, 50, 2000),
			score:    130,
			category: model.CategoryFake,
			signals:  []string{"no_profile_picture", "few_posts", "few_followers", "mass_following", "following_exceeds_followers"},
		},
		{
			name:     "healthy account",
			attrs:    model.NewProfileAttributes(true, 50, 5000, 300),
			score:    0,
			category: model.CategoryReal,
		},
		{
			name:     "small account following more than followed",
			attrs:    model.NewProfileAttributes(true, 3, 80, 90),
			score:    70,
			category: model.CategoryWarning,
			signals:  []string{"few_posts", "few_followers", "following_exceeds_followers"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score, signals, err := engine.Assess(tc.attrs)
			require.NoError(t, err)
			assert.Equal(t, tc.score, score)
			assert.Equal(t, tc.signals, signals)
			assert.Equal(t, tc.category, Classify(score))
		})
	}
}

func TestScoreBounds(t *testing.T) {
	engine := NewScoreEngine()

	for _, pic := range []bool{true, false} {
		for _, posts := range []int{0, 4, 5, 1000} {
			for _, followers := range []int{0, 99, 100, 1001, 100000} {
				for _, following := range []int{0, 99, 100, 1000, 1001, 100000} {
					score, err := engine.Score(model.NewProfileAttributes(pic, posts, followers, following))
					require.NoError(t, err)
					assert.GreaterOrEqual(t, score, 0)
					assert.LessOrEqual(t, score, MaxFraudScore)
				}
			}
		}
	}
}

func TestScoreMonotonic(t *testing.T) {
	engine := NewScoreEngine()
	base := func() (bool, int, int, int) { return true, 10, 500, 400 }

	score := func(pic bool, posts, followers, following int) int {
		s, err := engine.Score(model.NewProfileAttributes(pic, posts, followers, following))
		require.NoError(t, err)
		return s
	}

	pic, posts, followers, following := base()
	prev := score(pic, posts, followers, following)

	// 粉丝数递减，分数不降
	for f := followers; f >= 0; f -= 50 {
		s := score(pic, posts, f, following)
		assert.GreaterOrEqual(t, s, prev, "followers=%d", f)
		prev = s
	}

	// 关注数递增，分数不降
	prev = score(pic, posts, followers, following)
	for f := following; f <= 3000; f += 200 {
		s := score(pic, posts, followers, f)
		assert.GreaterOrEqual(t, s, prev, "following=%d", f)
		prev = s
	}

	// 帖子数递减，分数不降
	prev = score(pic, posts, followers, following)
	for p := posts; p >= 0; p-- {
		s := score(pic, p, followers, following)
		assert.GreaterOrEqual(t, s, prev, "posts=%d", p)
		prev = s
	}

	assert.GreaterOrEqual(t, score(false, posts, followers, following), score(true, posts, followers, following))
}

func TestScoreBoundaries(t *testing.T) {
	engine := NewScoreEngine()

	s, _ := engine.Score(model.NewProfileAttributes(true, 5, 100, 100))
	assert.Equal(t, 0, s, "posts=5 followers=100 following=100 fire nothing")

	s, _ = engine.Score(model.NewProfileAttributes(true, 5, 2000, 1000))
	assert.Equal(t, 0, s, "following=1000 is not mass following")

	s, _ = engine.Score(model.NewProfileAttributes(true, 5, 2000, 1001))
	assert.Equal(t, 30, s)
}

func TestScoreInvalidAttributes(t *testing.T) {
	engine := NewScoreEngine()
	n := 10
	yes := true

	testCases := []struct {
		name  string
		attrs *model.ProfileAttributes
	}{
		{"nil", nil},
		{"missing picture", &model.ProfileAttributes{PostCount: &n, FollowerCount: &n, FollowingCount: &n}},
		{"missing posts", &model.ProfileAttributes{HasProfilePicture: &yes, FollowerCount: &n, FollowingCount: &n}},
		{"missing followers", &model.ProfileAttributes{HasProfilePicture: &yes, PostCount: &n, FollowingCount: &n}},
		{"missing following", &model.ProfileAttributes{HasProfilePicture: &yes, PostCount: &n, FollowerCount: &n}},
		{"negative count", model.NewProfileAttributes(true, -1, 10, 10)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Score(tc.attrs)
			assert.ErrorIs(t, err, model.ErrInvalidAttributes)
		})
	}
}

func TestScoreMissingPictureOnly(t *testing.T) {
	s, err := NewScoreEngine().Score(model.NewProfileAttributes(false, 50, 5000, 300))
	require.NoError(t, err)
	assert.Equal(t, 30, s)
}
