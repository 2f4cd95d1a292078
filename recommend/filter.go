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

	"github.com/samber/lo"
)

// AllGenres is the genre filter value that matches everything.
const AllGenres = "All"

// YearRange is an inclusive release year interval.
type YearRange struct {
	From int32
	To   int32
}

// Filters are the optional display predicates applied to a candidate set.
// Zero values (empty strings, nil pointers, N <= 0) disable the
// corresponding predicate.
type Filters struct {
	// Genre must appear in the pipe-joined genre string, case-sensitive.
	// Empty or AllGenres disables the predicate.
	Genre string
	// MinScore keeps movies with Score >= *MinScore.
	MinScore *float32
	// Years keeps movies released inside the inclusive range. Movies
	// without a parsed year never satisfy a numeric comparison and are
	// excluded. Inherited semantics, kept deliberately.
	Years *YearRange
	// Title is a case-insensitive title substring.
	Title string
	// N truncates the result after all other predicates.
	N int
}

// Filter applies the predicates in a fixed order, genre then year range
// then minimum score then title search, and truncates to N last so the cap
// reflects every other filter. Relative order of the input is preserved.
// An empty result is a valid outcome, not a failure.
func Filter(candidates []ScoredMovie, f Filters) []ScoredMovie {
	result := candidates
	if f.Genre != "" && f.Genre != AllGenres {
		result = lo.Filter(result, func(movie ScoredMovie, _ int) bool {
			return strings.Contains(movie.Genres, f.Genre)
		})
	}
	if f.Years != nil {
		result = lo.Filter(result, func(movie ScoredMovie, _ int) bool {
			return movie.Year != nil && *movie.Year >= f.Years.From && *movie.Year <= f.Years.To
		})
	}
	if f.MinScore != nil {
		result = lo.Filter(result, func(movie ScoredMovie, _ int) bool {
			return movie.Score >= *f.MinScore
		})
	}
	if f.Title != "" {
		search := strings.ToLower(f.Title)
		result = lo.Filter(result, func(movie ScoredMovie, _ int) bool {
			return strings.Contains(strings.ToLower(movie.Title), search)
		})
	}
	if f.N > 0 && f.N < len(result) {
		result = result[:f.N]
	}
	return result
}
