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

package catalog

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/cinematch-io/cinematch/base/log"
)

// yearPattern matches the first parenthetical 4-digit group in a title,
// e.g. "The Matrix (1999)".
var yearPattern = regexp.MustCompile(`\((\d{4})\)`)

// Movie is one row of the static movie catalog. Genres keeps the raw
// pipe-joined tag string. Year is parsed from the title and is nil when
// the title carries no parenthetical 4-digit year.
type Movie struct {
	MovieId int32
	Title   string
	Genres  string
	Year    *int32
}

// Tags splits the pipe-joined genre string.
func (m Movie) Tags() []string {
	return strings.Split(m.Genres, "|")
}

// ParseYear extracts the release year from a movie title. The second
// return value reports whether a year was found.
func ParseYear(title string) (int32, bool) {
	groups := yearPattern.FindStringSubmatch(title)
	if groups == nil {
		return 0, false
	}
	year, err := strconv.ParseInt(groups[1], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(year), true
}

// Catalog is the static per-movie metadata lookup.
type Catalog struct {
	movies map[int32]Movie
	genres []string
}

// LoadMovies reads the movie catalog from CSV. The header must contain
// the movieId, title and genres columns.
func LoadMovies(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Annotate(err, "read movies header")
	}
	idCol, titleCol, genresCol := -1, -1, -1
	for i, name := range header {
		switch name {
		case "movieId":
			idCol = i
		case "title":
			titleCol = i
		case "genres":
			genresCol = i
		}
	}
	if idCol < 0 || titleCol < 0 || genresCol < 0 {
		return nil, errors.Errorf("movies header misses required columns: %v", header)
	}
	c := &Catalog{movies: make(map[int32]Movie)}
	genreSet := mapset.NewThreadUnsafeSet[string]()
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Annotatef(err, "read movies line %d", line)
		}
		if len(record) <= idCol || len(record) <= titleCol || len(record) <= genresCol {
			return nil, errors.Errorf("truncated record at line %d", line)
		}
		movieId, err := strconv.ParseInt(record[idCol], 10, 32)
		if err != nil {
			return nil, errors.Annotatef(err, "parse movieId at line %d", line)
		}
		movie := Movie{
			MovieId: int32(movieId),
			Title:   record[titleCol],
			Genres:  record[genresCol],
		}
		if year, ok := ParseYear(movie.Title); ok {
			movie.Year = &year
		}
		genreSet.Append(movie.Tags()...)
		c.movies[movie.MovieId] = movie
	}
	c.genres = genreSet.ToSlice()
	slices.Sort(c.genres)
	return c, nil
}

// OpenMovies loads the movie catalog from a CSV file.
func OpenMovies(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	c, err := LoadMovies(f)
	if err != nil {
		return nil, errors.Annotatef(err, "load movies from %s", path)
	}
	log.Logger().Info("load movies",
		zap.String("path", path),
		zap.Int("n_movies", c.Len()))
	return c, nil
}

func (c *Catalog) Get(movieId int32) (Movie, bool) {
	movie, ok := c.movies[movieId]
	return movie, ok
}

func (c *Catalog) Len() int {
	return len(c.movies)
}

// Genres returns the sorted distinct genre tags across the catalog.
func (c *Catalog) Genres() []string {
	return c.genres
}

// YearBounds returns the smallest and largest parsed year. ok is false
// when no movie carries a year.
func (c *Catalog) YearBounds() (min, max int32, ok bool) {
	for _, movie := range c.movies {
		if movie.Year == nil {
			continue
		}
		if !ok || *movie.Year < min {
			min = *movie.Year
		}
		if !ok || *movie.Year > max {
			max = *movie.Year
		}
		ok = true
	}
	return
}
