package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	placeholderDirector = "Unknown"
	noGenres            = "(no genres listed)"
)

type movieRecord struct {
	MovieLensID int
	Title       string
	Genres      []string
}

// seeder writes MovieLens rows into the catalog schema inside one
// transaction. Every imported movie is credited to a placeholder director.
type seeder struct {
	tx         *gorm.DB
	directorID int64
	genres     map[string]int64
}

func importMovies(ctx context.Context, db *gorm.DB, csvPath string, limit int) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	idx, err := parseMovieCSVHeader(reader)
	if err != nil {
		return 0, err
	}

	count := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &seeder{tx: tx, genres: map[string]int64{}}
		if s.directorID, err = s.ensureDirector(); err != nil {
			return err
		}

		for limit <= 0 || count < limit {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			rec, ok := parseMovieRecord(record, idx)
			if !ok {
				continue
			}

			inserted, err := s.insertMovie(rec)
			if err != nil {
				return fmt.Errorf("movie %d: %w", rec.MovieLensID, err)
			}
			if inserted {
				count++
			}
		}
		return nil
	})
	return count, err
}

func (s *seeder) ensureDirector() (int64, error) {
	var ids []int64
	if err := s.tx.Raw("SELECT id FROM directors WHERE name = ? ORDER BY id LIMIT 1", placeholderDirector).
		Scan(&ids).Error; err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	var id int64
	err := s.tx.Raw(
		"INSERT INTO directors (name, dob, nationality) VALUES (?, '1900-01-01', ?) RETURNING id",
		placeholderDirector, placeholderDirector,
	).Scan(&id).Error
	return id, err
}

func (s *seeder) ensureGenre(name string) (int64, error) {
	if id, ok := s.genres[name]; ok {
		return id, nil
	}
	var id int64
	err := s.tx.Raw(
		"INSERT INTO genres (name) VALUES (?) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id",
		name,
	).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	s.genres[name] = id
	return id, nil
}

// insertMovie skips titles already in the catalog so reruns are idempotent.
func (s *seeder) insertMovie(rec movieRecord) (bool, error) {
	var existing []int64
	if err := s.tx.Raw("SELECT id FROM movies WHERE title = ?", rec.Title).Scan(&existing).Error; err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	var detailID int64
	if err := s.tx.Raw(
		"INSERT INTO movie_details (detail) VALUES (?) RETURNING id",
		movieDetail(rec),
	).Scan(&detailID).Error; err != nil {
		return false, err
	}

	var movieID int64
	if err := s.tx.Raw(
		"INSERT INTO movies (title, detail_id, director_id) VALUES (?, ?, ?) RETURNING id",
		rec.Title, detailID, s.directorID,
	).Scan(&movieID).Error; err != nil {
		return false, err
	}

	for _, name := range rec.Genres {
		genreID, err := s.ensureGenre(name)
		if err != nil {
			return false, err
		}
		if err := s.tx.Exec(
			"INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			movieID, genreID,
		).Error; err != nil {
			return false, err
		}
	}
	return true, nil
}

func movieDetail(rec movieRecord) string {
	return fmt.Sprintf("Imported from MovieLens (movieId %d).", rec.MovieLensID)
}

type csvIndex struct {
	movieID, title, genres int
}

func parseMovieCSVHeader(reader *csv.Reader) (csvIndex, error) {
	header, err := reader.Read()
	if err != nil {
		return csvIndex{}, err
	}

	idx := csvIndex{movieID: -1, title: -1, genres: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			idx.movieID = i
		case "title":
			idx.title = i
		case "genres":
			idx.genres = i
		}
	}
	if idx.movieID == -1 || idx.title == -1 || idx.genres == -1 {
		return csvIndex{}, errors.New("missing required columns in csv header")
	}

	return idx, nil
}

func parseMovieRecord(record []string, idx csvIndex) (movieRecord, bool) {
	if idx.movieID >= len(record) || idx.title >= len(record) || idx.genres >= len(record) {
		return movieRecord{}, false
	}

	movieID, err := strconv.Atoi(strings.TrimSpace(record[idx.movieID]))
	if err != nil {
		return movieRecord{}, false
	}
	title := strings.TrimSpace(record[idx.title])
	if title == "" {
		return movieRecord{}, false
	}
	return movieRecord{
		MovieLensID: movieID,
		Title:       title,
		Genres:      splitGenres(record[idx.genres]),
	}, true
}

// splitGenres splits "Action|Sci-Fi" and drops MovieLens' no-genre marker.
func splitGenres(raw string) []string {
	var genres []string
	seen := map[string]bool{}
	for _, g := range strings.Split(raw, "|") {
		g = strings.TrimSpace(g)
		if g == "" || g == noGenres || seen[g] {
			continue
		}
		seen[g] = true
		genres = append(genres, g)
	}
	return genres
}
