// Package assets maps content identifiers to asset files. Textures fall back
// to a placeholder on a miss; sounds and music pick at random among the files
// registered for a kind.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/baggoblin/baggoblin/internal/game/dice"
	"github.com/baggoblin/baggoblin/internal/game/registry"
)

// ErrFontMissing is returned for an unregistered font. Fonts have no fallback.
var ErrFontMissing = errors.New("assets: font missing")

// Track is one music file and its display name.
type Track struct {
	Path string
	Name string
}

// Storage holds asset paths by identifier.
type Storage struct {
	textures *registry.Single[TextureID, string]
	sounds   *registry.Multi[SoundID, string]
	music    *registry.Multi[AlbumID, Track]
	fonts    map[FontID]string
}

// NewStorage returns an empty Storage picking with src.
//
// Precondition: src must be non-nil.
func NewStorage(src dice.Source, logger *zap.Logger) *Storage {
	return &Storage{
		textures: registry.NewSingle[TextureID, string]("textures", TextureNotFound, logger),
		sounds:   registry.NewMulti[SoundID, string]("sounds", src, logger),
		music:    registry.NewMulti[AlbumID, Track]("music", src, logger),
		fonts:    make(map[FontID]string),
	}
}

// PutTexture registers path as the texture for id.
func (s *Storage) PutTexture(id TextureID, path string) { s.textures.Put(id, path) }

// Texture returns the texture for id, or the not-found placeholder on a miss.
//
// Postcondition: err wraps registry.ErrFallbackMissing iff neither id nor the
// placeholder is registered; callers treat that as fatal.
func (s *Storage) Texture(id TextureID) (string, error) { return s.textures.Get(id) }

// PutSound adds path to the files for id.
func (s *Storage) PutSound(id SoundID, path string) { s.sounds.Put(id, path) }

// Sound returns a random file for id. ok is false (and the miss logged) when none are registered.
func (s *Storage) Sound(id SoundID) (string, bool) { return s.sounds.Pick(id) }

// PutMusic appends a track to album.
func (s *Storage) PutMusic(album AlbumID, t Track) { s.music.Put(album, t) }

// AlbumLen returns the number of tracks in album.
func (s *Storage) AlbumLen(album AlbumID) int { return s.music.Len(album) }

// AlbumTrack returns the i-th track of album.
func (s *Storage) AlbumTrack(album AlbumID, i int) (Track, bool) { return s.music.At(album, i) }

// RandomTrack returns a random track from album.
func (s *Storage) RandomTrack(album AlbumID) (Track, bool) { return s.music.Pick(album) }

// PutFont registers path as the font file for id.
func (s *Storage) PutFont(id FontID, path string) { s.fonts[id] = path }

// Font returns the font file for id.
//
// Postcondition: err wraps ErrFontMissing iff id is not registered.
func (s *Storage) Font(id FontID) (string, error) {
	path, ok := s.fonts[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrFontMissing, id)
	}
	return path, nil
}

// manifest is the on-disk shape of the asset manifest.
type manifest struct {
	Textures map[string]string   `yaml:"textures"`
	Sounds   map[string][]string `yaml:"sounds"`
	Music    map[string][]string `yaml:"music"`
	Fonts    map[string]string   `yaml:"fonts"`
}

// LoadManifestFromBytes builds a Storage from a manifest YAML document.
// Relative paths are resolved against root.
//
// Postcondition: every key names a declared identifier, or an error is returned.
func LoadManifestFromBytes(data []byte, root string, src dice.Source, logger *zap.Logger) (*Storage, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing asset manifest: %w", err)
	}
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}

	s := NewStorage(src, logger)
	for key, path := range m.Textures {
		id, err := ParseTextureID(key)
		if err != nil {
			return nil, err
		}
		s.PutTexture(id, resolve(path))
	}
	for key, paths := range m.Sounds {
		id, err := ParseSoundID(key)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			s.PutSound(id, resolve(p))
		}
	}
	for key, paths := range m.Music {
		id, err := ParseAlbumID(key)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			s.PutMusic(id, Track{Path: resolve(p), Name: filepath.Base(p)})
		}
	}
	for key, path := range m.Fonts {
		id, err := ParseFontID(key)
		if err != nil {
			return nil, err
		}
		s.PutFont(id, resolve(path))
	}
	return s, nil
}

// LoadManifestFile reads the manifest at path; asset paths resolve relative to its directory.
func LoadManifestFile(path string, src dice.Source, logger *zap.Logger) (*Storage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	s, err := LoadManifestFromBytes(data, filepath.Dir(path), src, logger)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return s, nil
}
