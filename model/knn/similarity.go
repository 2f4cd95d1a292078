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
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/cinematch-io/cinematch/base/log"
	"github.com/cinematch-io/cinematch/common/floats"
	"github.com/cinematch-io/cinematch/dataset"
)

// Similarity is the square, symmetric cosine similarity matrix over the
// user rows of a rating matrix. Entries are in [-1, 1]. Rows with zero norm
// get similarity 0 to every other user; the diagonal is forced to 1
// regardless of norm. Both rules keep scores reproducible and must not be
// changed independently.
type Similarity struct {
	matrix *dataset.Matrix
	values [][]float32
}

// NewSimilarity precomputes pairwise cosine similarity between all users.
// The cost is O(U^2*M), lookups afterwards are O(1).
func NewSimilarity(m *dataset.Matrix) *Similarity {
	start := time.Now()
	n := m.CountUsers()
	norms := make([]float32, n)
	for i := 0; i < n; i++ {
		norms[i] = floats.Norm(m.Row(i))
	}
	values := make([][]float32, n)
	for i := range values {
		values[i] = make([]float32, n)
	}
	for i := 0; i < n; i++ {
		values[i][i] = 1
		for j := i + 1; j < n; j++ {
			if norms[i] == 0 || norms[j] == 0 {
				continue
			}
			s := floats.Dot(m.Row(i), m.Row(j)) / (norms[i] * norms[j])
			values[i][j] = s
			values[j][i] = s
		}
	}
	log.Logger().Info("compute similarity matrix",
		zap.Int("n_users", n),
		zap.Duration("elapsed", time.Since(start)))
	return &Similarity{matrix: m, values: values}
}

// Vector returns one similarity weight per user, aligned with the rating
// matrix row order. Unknown users are rejected here so that callers never
// see a bare index failure.
func (s *Similarity) Vector(userId int32) ([]float32, error) {
	i, ok := s.matrix.UserPosition(userId)
	if !ok {
		return nil, errors.NotFoundf("user %d", userId)
	}
	return s.values[i], nil
}
