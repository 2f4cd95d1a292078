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
	"github.com/juju/errors"

	"github.com/cinematch-io/cinematch/catalog"
	"github.com/cinematch-io/cinematch/dataset"
	"github.com/cinematch-io/cinematch/model/knn"
)

// ScoredMovie is a catalog movie joined with its predicted preference
// score. It is the unit flowing through the filter pipeline.
type ScoredMovie struct {
	catalog.Movie
	Score float32
}

// Recommender bundles the rating matrix, the similarity matrix, the
// catalog and the user directory into one immutable context built at
// startup. All methods only read shared state, so a Recommender is safe
// for concurrent use.
type Recommender struct {
	matrix    *dataset.Matrix
	predictor *knn.Predictor
	catalog   *catalog.Catalog
	directory UserDirectory
}

// NewRecommender precomputes the similarity matrix and wires the
// predictor. This is the expensive call of the process lifetime.
func NewRecommender(matrix *dataset.Matrix, c *catalog.Catalog, directory UserDirectory) *Recommender {
	return &Recommender{
		matrix:    matrix,
		predictor: knn.NewPredictor(matrix, knn.NewSimilarity(matrix)),
		catalog:   c,
		directory: directory,
	}
}

// ListUsers returns the display name to user id mapping.
func (r *Recommender) ListUsers() map[string]int32 {
	return r.directory.List()
}

// Resolve maps a display name to a user id through the injected
// directory.
func (r *Recommender) Resolve(name string) (int32, bool) {
	return r.directory.Resolve(name)
}

// Catalog exposes the static movie metadata.
func (r *Recommender) Catalog() *catalog.Catalog {
	return r.catalog
}

// Recommend predicts scores for all movies the user has not rated, joins
// the top fetchCount candidates with the catalog and returns them in rank
// order. Predictions without a catalog row are skipped. The result is the
// candidate set for Filter.
func (r *Recommender) Recommend(userId int32, fetchCount int) ([]ScoredMovie, error) {
	predictions, err := r.predictor.Predict(userId)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if fetchCount > 0 && fetchCount < len(predictions) {
		predictions = predictions[:fetchCount]
	}
	movies := make([]ScoredMovie, 0, len(predictions))
	for _, prediction := range predictions {
		movie, ok := r.catalog.Get(prediction.MovieId)
		if !ok {
			continue
		}
		movies = append(movies, ScoredMovie{Movie: movie, Score: prediction.Score})
	}
	return movies, nil
}
