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
	"sort"

	"github.com/juju/errors"

	"github.com/cinematch-io/cinematch/common/floats"
	"github.com/cinematch-io/cinematch/dataset"
)

// epsilon keeps the weighted average finite for movies no rated neighbor
// covers.
const epsilon = 1e-9

// Prediction is a predicted preference score for one movie.
type Prediction struct {
	MovieId int32
	Score   float32
}

// Predictor scores unseen movies for a user by the similarity-weighted
// average of neighbors' ratings.
type Predictor struct {
	matrix     *dataset.Matrix
	similarity *Similarity
}

func NewPredictor(matrix *dataset.Matrix, similarity *Similarity) *Predictor {
	return &Predictor{matrix: matrix, similarity: similarity}
}

// Predict scores every movie of the rating matrix for a user, except the
// movies the user already rated. For each movie the score is
//
//	sum(sim[v] * rating[v]) / (sum(sim[v] over raters) + epsilon)
//
// where the denominator counts only users who actually rated the movie.
// The result is ordered by descending score; ties keep ascending movieId
// order, so output is deterministic.
func (p *Predictor) Predict(userId int32) ([]Prediction, error) {
	sims, err := p.similarity.Vector(userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	numMovies := p.matrix.CountMovies()
	numerator := make([]float32, numMovies)
	denominator := make([]float32, numMovies)
	for v := 0; v < p.matrix.CountUsers(); v++ {
		row := p.matrix.Row(v)
		w := sims[v]
		floats.MulConstAdd(row, w, numerator)
		for j, r := range row {
			if r != 0 {
				denominator[j] += w
			}
		}
	}
	floats.AddConst(denominator, epsilon)
	rated := p.matrix.Rated(userId)
	predictions := make([]Prediction, 0, numMovies-rated.Cardinality())
	for j := 0; j < numMovies; j++ {
		movieId := p.matrix.MovieId(j)
		if rated.Contains(movieId) {
			continue
		}
		predictions = append(predictions, Prediction{
			MovieId: movieId,
			Score:   numerator[j] / denominator[j],
		})
	}
	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Score > predictions[j].Score
	})
	return predictions, nil
}
