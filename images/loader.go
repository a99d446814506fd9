package images

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"rpw/config"
)

// Loader resolves Image object sources and caches prepared results for the
// duration of a single render.
type Loader struct {
	home  string
	fsys  fs.FS
	cfg   *config.ImagesConfig
	log   *zap.Logger
	cache map[string]*Image
}

// NewLoader creates loader resolving relative paths against home. When fsys
// is not nil paths are looked up there (home being a slash separated
// directory inside fsys), otherwise on local file system.
func NewLoader(home string, fsys fs.FS, cfg *config.ImagesConfig, log *zap.Logger) *Loader {
	return &Loader{
		home:  home,
		fsys:  fsys,
		cfg:   cfg,
		log:   log.Named("images"),
		cache: make(map[string]*Image),
	}
}

// Load accepts either a path or raw image data. Strings containing NUL are
// treated as data, like byte slices.
func (l *Loader) Load(src any) (*Image, error) {
	switch v := src.(type) {
	case []byte:
		return l.prepare("", v)
	case string:
		if strings.ContainsRune(v, 0) {
			return l.prepare("", []byte(v))
		}
		if v == "" {
			return nil, errors.New("empty image source")
		}
		if img, ok := l.cache[v]; ok {
			return img, nil
		}
		data, err := l.read(v)
		if err != nil {
			return nil, err
		}
		img, err := l.prepare(v, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v, err)
		}
		l.cache[v] = img
		return img, nil
	case nil:
		return nil, errors.New("empty image source")
	default:
		return nil, fmt.Errorf("unexpected image source type %T", src)
	}
}

func (l *Loader) prepare(name string, data []byte) (*Image, error) {
	img, err := Prepare(data, l.cfg, l.log)
	if err != nil {
		return nil, err
	}
	l.log.Debug("Image prepared", zap.String("source", name), zap.String("id", img.ID),
		zap.String("type", img.MimeType), zap.Int("width", img.Dim.Width), zap.Int("height", img.Dim.Height))
	return img, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	if l.fsys != nil {
		p := strings.TrimPrefix(path.Clean(filepath.ToSlash(name)), "/")
		if !path.IsAbs(filepath.ToSlash(name)) && l.home != "" && l.home != "." {
			p = path.Join(l.home, p)
		}
		return fs.ReadFile(l.fsys, p)
	}

	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	return os.ReadFile(filepath.Join(l.home, name))
}
