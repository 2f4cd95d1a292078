// Copyright 2025 CineMatch Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommend

import (
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/cinematch-io/cinematch/catalog"
	"github.com/cinematch-io/cinematch/dataset"
)

const testMoviesCSV = `movieId,title,genres
1,The Matrix (1999),Action|Sci-Fi
2,Matriarch (2005),Horror
3,Heat (1995),Action|Crime|Thriller
4,Toy Story (1995),Adventure|Animation|Children
`

func newTestRecommender(t *testing.T) *Recommender {
	matrix, err := dataset.BuildMatrix([]dataset.Rating{
		{UserId: 1, MovieId: 1, Rating: 5},
		{UserId: 1, MovieId: 2, Rating: 1},
		{UserId: 2, MovieId: 1, Rating: 4},
		{UserId: 2, MovieId: 2, Rating: 1},
		{UserId: 2, MovieId: 3, Rating: 5},
		{UserId: 2, MovieId: 5, Rating: 2},
		{UserId: 3, MovieId: 2, Rating: 5},
		{UserId: 3, MovieId: 3, Rating: 4},
	})
	assert.NoError(t, err)
	c, err := catalog.LoadMovies(strings.NewReader(testMoviesCSV))
	assert.NoError(t, err)
	return NewRecommender(matrix, c, StaticDirectory{"Hira": 1, "Ali": 2, "Rehan": 3})
}

func TestRecommender_Recommend(t *testing.T) {
	r := newTestRecommender(t)
	movies, err := r.Recommend(1, 300)
	assert.NoError(t, err)
	// movie 5 has no catalog row and is dropped by the join; movies 1 and
	// 2 are already rated by user 1
	assert.Len(t, movies, 1)
	assert.Equal(t, int32(3), movies[0].MovieId)
	assert.Equal(t, "Heat (1995)", movies[0].Title)
	assert.Greater(t, movies[0].Score, float32(0))
}

func TestRecommender_RecommendOrder(t *testing.T) {
	r := newTestRecommender(t)
	movies, err := r.Recommend(3, 300)
	assert.NoError(t, err)
	for i := 1; i < len(movies); i++ {
		assert.GreaterOrEqual(t, movies[i-1].Score, movies[i].Score)
	}
}

func TestRecommender_FetchCount(t *testing.T) {
	r := newTestRecommender(t)
	all, err := r.Recommend(3, 0)
	assert.NoError(t, err)
	assert.NotEmpty(t, all)
	one, err := r.Recommend(3, 1)
	assert.NoError(t, err)
	assert.LessOrEqual(t, len(one), 1)
}

func TestRecommender_UnknownUser(t *testing.T) {
	r := newTestRecommender(t)
	_, err := r.Recommend(42, 300)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestRecommender_Directory(t *testing.T) {
	r := newTestRecommender(t)
	userId, ok := r.Resolve("Hira")
	assert.True(t, ok)
	assert.Equal(t, int32(1), userId)
	_, ok = r.Resolve("Nobody")
	assert.False(t, ok)
	users := r.ListUsers()
	assert.Len(t, users, 3)
	// the listing is a copy, mutating it leaves the directory intact
	users["Mallory"] = 99
	_, ok = r.Resolve("Mallory")
	assert.False(t, ok)
}

func TestRecommender_RecommendThenFilter(t *testing.T) {
	r := newTestRecommender(t)
	movies, err := r.Recommend(3, 300)
	assert.NoError(t, err)
	filtered := Filter(movies, Filters{Genre: "Action", N: 5})
	for _, movie := range filtered {
		assert.Contains(t, movie.Genres, "Action")
	}
	// an impossible threshold is an empty result, not an error
	assert.Empty(t, Filter(movies, Filters{MinScore: lo.ToPtr(float32(10))}))
}
