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
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/cinematch-io/cinematch/base/log"
)

// Rating is one observed preference of a user for a movie. Valid ratings
// are in the range 1..5, zero is reserved as the unrated sentinel.
type Rating struct {
	UserId  int32
	MovieId int32
	Rating  float32
}

// LoadRatings reads rating triples from CSV. The header must contain the
// userId, movieId and rating columns, extra columns are ignored.
func LoadRatings(r io.Reader) ([]Rating, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Annotate(err, "read ratings header")
	}
	userCol, movieCol, ratingCol := -1, -1, -1
	for i, name := range header {
		switch name {
		case "userId":
			userCol = i
		case "movieId":
			movieCol = i
		case "rating":
			ratingCol = i
		}
	}
	if userCol < 0 || movieCol < 0 || ratingCol < 0 {
		return nil, errors.Errorf("ratings header misses required columns: %v", header)
	}
	var ratings []Rating
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Annotatef(err, "read ratings line %d", line)
		}
		if len(record) <= userCol || len(record) <= movieCol || len(record) <= ratingCol {
			return nil, errors.Errorf("truncated record at line %d", line)
		}
		userId, err := strconv.ParseInt(record[userCol], 10, 32)
		if err != nil {
			return nil, errors.Annotatef(err, "parse userId at line %d", line)
		}
		movieId, err := strconv.ParseInt(record[movieCol], 10, 32)
		if err != nil {
			return nil, errors.Annotatef(err, "parse movieId at line %d", line)
		}
		rating, err := strconv.ParseFloat(record[ratingCol], 32)
		if err != nil {
			return nil, errors.Annotatef(err, "parse rating at line %d", line)
		}
		ratings = append(ratings, Rating{
			UserId:  int32(userId),
			MovieId: int32(movieId),
			Rating:  float32(rating),
		})
	}
	return ratings, nil
}

// OpenRatings loads rating triples from a CSV file.
func OpenRatings(path string) ([]Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	ratings, err := LoadRatings(f)
	if err != nil {
		return nil, errors.Annotatef(err, "load ratings from %s", path)
	}
	log.Logger().Info("load ratings",
		zap.String("path", path),
		zap.Int("n_ratings", len(ratings)))
	return ratings, nil
}
