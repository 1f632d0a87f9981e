package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lyricdeck/lyricdeck-api/internal/domain"
	"github.com/lyricdeck/lyricdeck-api/internal/store"
)

// AlbumStore implements the store.AlbumStore interface
// using a PostgreSQL database as the storage backend.
// Albums are reference data, so the store is read-only.
type AlbumStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAlbumStore creates a new PostgreSQL implementation of the AlbumStore interface.
func NewAlbumStore(db store.DBTX, logger *slog.Logger) *AlbumStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AlbumStore{
		db:     db,
		logger: logger.With(slog.String("component", "album_store")),
	}
}

// Ensure AlbumStore implements store.AlbumStore interface
var _ store.AlbumStore = (*AlbumStore)(nil)

// GetByID implements store.AlbumStore.GetByID
// Returns store.ErrAlbumNotFound if the album does not exist.
func (s *AlbumStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	var album domain.Album
	err := s.db.QueryRowContext(ctx,
		`SELECT id, album_name, artist FROM albums WHERE id = $1`, id).
		Scan(&album.ID, &album.AlbumName, &album.Artist)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("failed to get album: %w", err)
	}

	return &album, nil
}

// GetAll implements store.AlbumStore.GetAll
func (s *AlbumStore) GetAll(ctx context.Context) ([]*domain.Album, error) {
	return s.queryAlbums(ctx, `SELECT id, album_name, artist FROM albums ORDER BY id`)
}

// ListArtists implements store.AlbumStore.ListArtists
// Returns the distinct artist names, sorted.
func (s *AlbumStore) ListArtists(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT artist FROM albums ORDER BY artist`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	artists := []string{}
	for rows.Next() {
		var artist string
		if err := rows.Scan(&artist); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate artists: %w", err)
	}

	return artists, nil
}

// ListByArtist implements store.AlbumStore.ListByArtist
// Returns all albums when artist is empty.
func (s *AlbumStore) ListByArtist(ctx context.Context, artist string) ([]*domain.Album, error) {
	if artist == "" {
		return s.GetAll(ctx)
	}
	return s.queryAlbums(ctx,
		`SELECT id, album_name, artist FROM albums WHERE artist = $1 ORDER BY id`, artist)
}

func (s *AlbumStore) queryAlbums(ctx context.Context, query string, args ...any) ([]*domain.Album, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	albums := []*domain.Album{}
	for rows.Next() {
		var album domain.Album
		if err := rows.Scan(&album.ID, &album.AlbumName, &album.Artist); err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, &album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate albums: %w", err)
	}

	return albums, nil
}
