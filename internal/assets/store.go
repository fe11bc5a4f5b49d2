// Package assets resolves named base-background and border images from the
// storage root and persists finished collages.
package assets

import (
	"errors"
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrNotFound reports that a named asset (and its fallback, where one
// applies) is missing from the store.
var ErrNotFound = errors.New("asset not found")

const (
	backgroundsDir = "backgrounds"
	bordersDir     = "borders"
	outputsDir     = "outputs"
)

// Store reads named assets below a single root directory:
//
//	<root>/backgrounds/*.png   base background layers
//	<root>/borders/*.png       alpha-bearing border overlays
//	<root>/outputs/            finished collages
type Store struct {
	root              string
	defaultBackground string
	defaultBorder     string
}

// Options for NewStore. Defaults name the asset used when a requested one
// is missing; empty defaults disable the fallback.
type Options struct {
	Root              string
	DefaultBackground string
	DefaultBorder     string
}

func NewStore(opts Options) *Store {
	return &Store{
		root:              opts.Root,
		defaultBackground: opts.DefaultBackground,
		defaultBorder:     opts.DefaultBorder,
	}
}

// Background loads a named base background, falling back to the default
// when the name is missing. Returns ErrNotFound only when the fallback is
// missing too.
func (s *Store) Background(name string) (image.Image, error) {
	return s.load(backgroundsDir, name, s.defaultBackground)
}

// Border loads a named border overlay with the same fallback behavior.
func (s *Store) Border(name string) (image.Image, error) {
	return s.load(bordersDir, name, s.defaultBorder)
}

// RandomBackground picks one of the available backgrounds. The chosen name
// is returned alongside the image so the caller can log it.
func (s *Store) RandomBackground() (image.Image, string, error) {
	names, err := s.ListBackgrounds()
	if err != nil {
		return nil, "", err
	}
	if len(names) == 0 {
		return nil, "", fmt.Errorf("%w: no backgrounds in %s", ErrNotFound, filepath.Join(s.root, backgroundsDir))
	}
	name := names[rand.Intn(len(names))]
	img, err := s.Background(name)
	return img, name, err
}

// ListBackgrounds enumerates the background catalog, sorted by name.
func (s *Store) ListBackgrounds() ([]string, error) {
	return s.list(backgroundsDir)
}

// ListBorders enumerates the border catalog, sorted by name.
func (s *Store) ListBorders() ([]string, error) {
	return s.list(bordersDir)
}

// SaveOutput writes a finished collage below outputs/, creating the
// directory on first use, and returns the written path. Callers only reach
// this after the whole pipeline has succeeded.
func (s *Store) SaveOutput(name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, outputsDir)
	if err := ensureDir(dir); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if !strings.HasSuffix(name, ".png") {
		name += ".png"
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}

func (s *Store) load(kind, name, fallback string) (image.Image, error) {
	if name != "" {
		img, err := imaging.Open(filepath.Join(s.root, kind, name))
		if err == nil {
			return img, nil
		}
		if fallback == "" || fallback == name {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, name)
		}
	} else if fallback == "" {
		return nil, fmt.Errorf("%w: no %s requested and no default configured", ErrNotFound, kind)
	}

	img, err := imaging.Open(filepath.Join(s.root, kind, fallback))
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s (default)", ErrNotFound, kind, fallback)
	}
	return img, nil
}

func (s *Store) list(kind string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s dir: %w", kind, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(e.Name())); ext == ".png" || ext == ".jpg" || ext == ".jpeg" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
