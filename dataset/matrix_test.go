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

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMatrix(t *testing.T) {
	ratings := []Rating{
		{UserId: 3, MovieId: 30, Rating: 5},
		{UserId: 1, MovieId: 10, Rating: 4},
		{UserId: 1, MovieId: 30, Rating: 2},
		{UserId: 2, MovieId: 20, Rating: 3},
	}
	m, err := BuildMatrix(ratings)
	assert.NoError(t, err)
	// rows and columns are sorted regardless of input order
	assert.Equal(t, []int32{1, 2, 3}, m.UserIds())
	assert.Equal(t, []int32{10, 20, 30}, m.MovieIds())
	assert.Equal(t, 3, m.CountUsers())
	assert.Equal(t, 3, m.CountMovies())
	// missing cells are zero
	assert.Equal(t, []float32{4, 0, 2}, m.Row(0))
	assert.Equal(t, []float32{0, 3, 0}, m.Row(1))
	assert.Equal(t, []float32{0, 0, 5}, m.Row(2))
	assert.Equal(t, int32(20), m.MovieId(1))
}

func TestBuildMatrix_Duplicate(t *testing.T) {
	_, err := BuildMatrix([]Rating{
		{UserId: 1, MovieId: 10, Rating: 4},
		{UserId: 1, MovieId: 10, Rating: 5},
	})
	assert.ErrorContains(t, err, "duplicate rating")
}

func TestMatrix_UserPosition(t *testing.T) {
	m, err := BuildMatrix([]Rating{{UserId: 5, MovieId: 10, Rating: 1}})
	assert.NoError(t, err)
	pos, ok := m.UserPosition(5)
	assert.True(t, ok)
	assert.Equal(t, 0, pos)
	_, ok = m.UserPosition(6)
	assert.False(t, ok)
}

func TestMatrix_Rated(t *testing.T) {
	m, err := BuildMatrix([]Rating{
		{UserId: 1, MovieId: 10, Rating: 4},
		{UserId: 1, MovieId: 30, Rating: 2},
	})
	assert.NoError(t, err)
	assert.True(t, m.Rated(1).Contains(10))
	assert.True(t, m.Rated(1).Contains(30))
	assert.False(t, m.Rated(1).Contains(20))
	assert.Equal(t, 0, m.Rated(99).Cardinality())
}
