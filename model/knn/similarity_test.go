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

package knn

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"

	"github.com/cinematch-io/cinematch/dataset"
)

func newTestMatrix(t *testing.T) *dataset.Matrix {
	m, err := dataset.BuildMatrix([]dataset.Rating{
		{UserId: 1, MovieId: 1, Rating: 5},
		{UserId: 1, MovieId: 2, Rating: 1},
		{UserId: 2, MovieId: 1, Rating: 4},
		{UserId: 2, MovieId: 2, Rating: 1},
		{UserId: 2, MovieId: 3, Rating: 5},
		{UserId: 3, MovieId: 2, Rating: 5},
		{UserId: 3, MovieId: 3, Rating: 4},
	})
	assert.NoError(t, err)
	return m
}

func TestSimilarity_Symmetric(t *testing.T) {
	m := newTestMatrix(t)
	s := NewSimilarity(m)
	for _, i := range m.UserIds() {
		vi, err := s.Vector(i)
		assert.NoError(t, err)
		for _, j := range m.UserIds() {
			vj, err := s.Vector(j)
			assert.NoError(t, err)
			pi, _ := m.UserPosition(i)
			pj, _ := m.UserPosition(j)
			assert.InDelta(t, vi[pj], vj[pi], 1e-6)
			assert.GreaterOrEqual(t, float32(1), vi[pj])
			assert.LessOrEqual(t, float32(-1), vi[pj])
		}
	}
}

func TestSimilarity_Diagonal(t *testing.T) {
	m := newTestMatrix(t)
	s := NewSimilarity(m)
	for _, userId := range m.UserIds() {
		v, err := s.Vector(userId)
		assert.NoError(t, err)
		pos, _ := m.UserPosition(userId)
		// exactly 1, not just close to 1
		assert.Equal(t, float32(1), v[pos])
	}
}

func TestSimilarity_Cosine(t *testing.T) {
	m, err := dataset.BuildMatrix([]dataset.Rating{
		{UserId: 1, MovieId: 1, Rating: 1},
		{UserId: 2, MovieId: 2, Rating: 1},
		{UserId: 3, MovieId: 1, Rating: 2},
	})
	assert.NoError(t, err)
	s := NewSimilarity(m)
	v, err := s.Vector(1)
	assert.NoError(t, err)
	// orthogonal rows
	assert.Equal(t, float32(0), v[1])
	// parallel rows have similarity 1 regardless of scale
	assert.InDelta(t, 1, v[2], 1e-6)
}

func TestSimilarity_UnknownUser(t *testing.T) {
	s := NewSimilarity(newTestMatrix(t))
	_, err := s.Vector(42)
	assert.True(t, errors.Is(err, errors.NotFound))
}
