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
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cinematch-io/cinematch/base/log"
	"github.com/cinematch-io/cinematch/catalog"
	"github.com/cinematch-io/cinematch/config"
	"github.com/cinematch-io/cinematch/dataset"
	"github.com/cinematch-io/cinematch/recommend"
)

var cinematchCommand = &cobra.Command{
	Use:   "cinematch",
	Short: "Recommend movies from collaborative filtering over rating history.",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.PersistentFlags()
		// setup logger
		debug, _ := flags.GetBool("debug")
		log.SetLogger(flags, debug)

		// load config
		configPath, _ := flags.GetString("config")
		conf, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}

		// load data and build the shared matrices
		ratings, err := openRatings(conf.Data.Ratings)
		if err != nil {
			log.Logger().Fatal("failed to load ratings", zap.Error(err))
		}
		matrix, err := dataset.BuildMatrix(ratings)
		if err != nil {
			log.Logger().Fatal("failed to build rating matrix", zap.Error(err))
		}
		movies, err := catalog.OpenMovies(conf.Data.Movies)
		if err != nil {
			log.Logger().Fatal("failed to load movies", zap.Error(err))
		}
		recommender := recommend.NewRecommender(matrix, movies, recommend.StaticDirectory(conf.Users))

		if listUsers, _ := flags.GetBool("list-users"); listUsers {
			table := tablewriter.NewWriter(os.Stdout)
			table.Header([]string{"name", "user id"})
			for name, userId := range recommender.ListUsers() {
				table.Append([]string{name, strconv.FormatInt(int64(userId), 10)})
			}
			table.Render()
			return
		}
		if listGenres, _ := flags.GetBool("list-genres"); listGenres {
			for _, genre := range recommender.Catalog().Genres() {
				fmt.Println(genre)
			}
			return
		}

		// resolve the target user
		userId, err := resolveUser(cmd, recommender)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		// recommend and filter
		fetchSize := conf.Recommend.FetchSize
		if flags.Changed("fetch") {
			fetchSize, _ = flags.GetInt("fetch")
		}
		candidates, err := recommender.Recommend(userId, fetchSize)
		if err != nil {
			if errors.Is(err, errors.NotFound) {
				fmt.Fprintf(os.Stderr, "user %d not found\n", userId)
				os.Exit(1)
			}
			log.Logger().Fatal("failed to recommend", zap.Error(err))
		}
		result := recommend.Filter(candidates, buildFilters(cmd, recommender.Catalog(), conf))
		if len(result) == 0 {
			fmt.Println("No movies found matching your filters.")
			return
		}
		renderMovies(result)
	},
}

func init() {
	log.AddFlags(cinematchCommand.PersistentFlags())
	cinematchCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	cinematchCommand.PersistentFlags().StringP("config", "c", "config.toml", "configuration file path")
	cinematchCommand.PersistentFlags().String("name", "", "display name of the target user")
	cinematchCommand.PersistentFlags().Int32("user", 0, "id of the target user")
	cinematchCommand.PersistentFlags().IntP("top", "n", 0, "number of movies to show")
	cinematchCommand.PersistentFlags().Int("fetch", 0, "number of candidates fetched before filtering")
	cinematchCommand.PersistentFlags().String("genre", recommend.AllGenres, "genre filter, case-sensitive")
	cinematchCommand.PersistentFlags().Float32("min-score", 0, "minimum predicted score")
	cinematchCommand.PersistentFlags().Int32("year-from", 0, "first release year included")
	cinematchCommand.PersistentFlags().Int32("year-to", 0, "last release year included")
	cinematchCommand.PersistentFlags().String("search", "", "title substring, case-insensitive")
	cinematchCommand.PersistentFlags().Bool("list-users", false, "list known users and exit")
	cinematchCommand.PersistentFlags().Bool("list-genres", false, "list catalog genres and exit")
}

// openRatings loads the ratings CSV with a progress bar over the file.
func openRatings(path string) ([]dataset.Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Trace(err)
	}
	pbReader := progressbar.NewReader(f, progressbar.DefaultBytes(stat.Size(), "Loading ratings"))
	ratings, err := dataset.LoadRatings(&pbReader)
	if err != nil {
		return nil, errors.Annotatef(err, "load ratings from %s", path)
	}
	log.Logger().Info("load ratings",
		zap.String("path", path),
		zap.Int("n_ratings", len(ratings)))
	return ratings, nil
}

// resolveUser picks the target user from --name via the directory, or
// from --user directly. Rejections are user-facing messages.
func resolveUser(cmd *cobra.Command, recommender *recommend.Recommender) (int32, error) {
	flags := cmd.PersistentFlags()
	if name, _ := flags.GetString("name"); name != "" {
		userId, ok := recommender.Resolve(name)
		if !ok {
			return 0, errors.Errorf("user %q not found, try --list-users", name)
		}
		return userId, nil
	}
	if flags.Changed("user") {
		userId, _ := flags.GetInt32("user")
		return userId, nil
	}
	return 0, errors.New("either --name or --user is required")
}

func buildFilters(cmd *cobra.Command, c *catalog.Catalog, conf *config.Config) recommend.Filters {
	flags := cmd.PersistentFlags()
	filters := recommend.Filters{N: conf.Recommend.DefaultN}
	if flags.Changed("top") {
		filters.N, _ = flags.GetInt("top")
	}
	filters.Genre, _ = flags.GetString("genre")
	filters.Title, _ = flags.GetString("search")
	if flags.Changed("min-score") {
		minScore, _ := flags.GetFloat32("min-score")
		filters.MinScore = &minScore
	}
	if flags.Changed("year-from") || flags.Changed("year-to") {
		// an open end falls back to the catalog bounds, like the original
		// year slider
		from, to, _ := c.YearBounds()
		if flags.Changed("year-from") {
			from, _ = flags.GetInt32("year-from")
		}
		if flags.Changed("year-to") {
			to, _ = flags.GetInt32("year-to")
		}
		filters.Years = &recommend.YearRange{From: from, To: to}
	}
	return filters
}

func renderMovies(movies []recommend.ScoredMovie) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"#", "title", "genres", "year", "score"})
	for i, movie := range movies {
		year := ""
		if movie.Year != nil {
			year = strconv.FormatInt(int64(*movie.Year), 10)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			movie.Title,
			movie.Genres,
			year,
			strconv.FormatFloat(float64(movie.Score), 'f', 2, 32),
		})
	}
	table.Render()
}

func main() {
	if err := cinematchCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
