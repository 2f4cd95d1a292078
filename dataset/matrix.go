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
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
)

// Matrix is the dense user-by-movie rating matrix. Rows are distinct
// userIds in ascending order, columns are distinct movieIds in ascending
// order. Cells without an observed rating are zero. A Matrix is built once
// at load time and never mutated, so it is safe to share between readers.
type Matrix struct {
	userIds    []int32
	movieIds   []int32
	userIndex  map[int32]int
	movieIndex map[int32]int
	values     [][]float32
	rated      []mapset.Set[int32]
}

// BuildMatrix pivots rating triples into a dense matrix. A duplicate
// (userId, movieId) pair makes the pivot ambiguous and is rejected.
func BuildMatrix(ratings []Rating) (*Matrix, error) {
	userSet := mapset.NewThreadUnsafeSet[int32]()
	movieSet := mapset.NewThreadUnsafeSet[int32]()
	for _, r := range ratings {
		userSet.Add(r.UserId)
		movieSet.Add(r.MovieId)
	}
	m := &Matrix{
		userIds:    userSet.ToSlice(),
		movieIds:   movieSet.ToSlice(),
		userIndex:  make(map[int32]int, userSet.Cardinality()),
		movieIndex: make(map[int32]int, movieSet.Cardinality()),
	}
	slices.Sort(m.userIds)
	slices.Sort(m.movieIds)
	for i, userId := range m.userIds {
		m.userIndex[userId] = i
	}
	for i, movieId := range m.movieIds {
		m.movieIndex[movieId] = i
	}
	m.values = make([][]float32, len(m.userIds))
	m.rated = make([]mapset.Set[int32], len(m.userIds))
	for i := range m.values {
		m.values[i] = make([]float32, len(m.movieIds))
		m.rated[i] = mapset.NewThreadUnsafeSet[int32]()
	}
	for _, r := range ratings {
		row := m.userIndex[r.UserId]
		if !m.rated[row].Add(r.MovieId) {
			return nil, errors.Errorf("duplicate rating of movie %d by user %d", r.MovieId, r.UserId)
		}
		m.values[row][m.movieIndex[r.MovieId]] = r.Rating
	}
	return m, nil
}

// UserIds returns the row index in ascending order.
func (m *Matrix) UserIds() []int32 {
	return m.userIds
}

// MovieIds returns the column index in ascending order.
func (m *Matrix) MovieIds() []int32 {
	return m.movieIds
}

func (m *Matrix) CountUsers() int {
	return len(m.userIds)
}

func (m *Matrix) CountMovies() int {
	return len(m.movieIds)
}

// Row returns the dense rating vector at row position i.
func (m *Matrix) Row(i int) []float32 {
	return m.values[i]
}

// MovieId returns the movieId of column position j.
func (m *Matrix) MovieId(j int) int32 {
	return m.movieIds[j]
}

// UserPosition returns the row position of a userId.
func (m *Matrix) UserPosition(userId int32) (int, bool) {
	i, ok := m.userIndex[userId]
	return i, ok
}

// Rated returns the set of movieIds rated by a user. Unknown users get an
// empty set.
func (m *Matrix) Rated(userId int32) mapset.Set[int32] {
	if i, ok := m.userIndex[userId]; ok {
		return m.rated[i]
	}
	return mapset.NewThreadUnsafeSet[int32]()
}
