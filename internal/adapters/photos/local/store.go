// Package local guarda fotos en disco. Pensado para dev: un archivo por
// animal, la última foto pisa la anterior.
package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("photo dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(ctx context.Context, animalID string, data []byte, contentType string) (string, error) {
	if strings.TrimSpace(animalID) == "" {
		return "", errors.New("animal id required")
	}
	if len(data) == 0 {
		return "", errors.New("empty photo")
	}

	name := animalID + extFor(contentType)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return "file://" + path, nil
}

func extFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
