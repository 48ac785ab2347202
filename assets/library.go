// Package assets owns every image the game draws and hands out handles to them.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/nihilchroma/game"
)

// Library maps visual handles to ebiten images. Handle 0 is game.NoVisual;
// the first loaded image gets handle 1.
type Library struct {
	log     *zap.Logger
	images  []*ebiten.Image
	printer *message.Printer
}

func NewLibrary(log *zap.Logger) *Library {
	return &Library{
		log:     log,
		images:  []*ebiten.Image{nil},
		printer: message.NewPrinter(language.English),
	}
}

// Add registers img and returns its handle.
func (l *Library) Add(img *ebiten.Image) game.VisualHandle {
	l.images = append(l.images, img)
	return game.VisualHandle(len(l.images) - 1)
}

// Image returns the image behind handle, or nil for NoVisual and unknown handles.
func (l *Library) Image(handle game.VisualHandle) *ebiten.Image {
	if handle <= game.NoVisual || int(handle) >= len(l.images) {
		return nil
	}
	return l.images[handle]
}

// Len is the number of registered images.
func (l *Library) Len() int {
	return len(l.images) - 1
}

// Load reads a single required image.
func (l *Library) Load(path string) (game.VisualHandle, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return game.NoVisual, fmt.Errorf("load %s: %w", path, err)
	}
	l.log.Debug("image loaded", zap.String("path", path))
	return l.Add(img), nil
}

// LoadDir loads every image in dir as optional variants. A missing or empty
// directory yields no handles; files that fail to decode are logged and skipped.
func (l *Library) LoadDir(ctx context.Context, dir string) ([]game.VisualHandle, error) {
	decoded, err := DecodeDir(ctx, dir, l.log)
	if err != nil {
		return nil, err
	}

	handles := make([]game.VisualHandle, 0, len(decoded))
	for _, d := range decoded {
		handles = append(handles, l.Add(ebiten.NewImageFromImage(d.Image)))
	}
	l.log.Debug("variants loaded", zap.String("dir", dir), zap.Int("count", len(handles)))
	return handles, nil
}

// Decoded is an image read from disk.
type Decoded struct {
	Path  string
	Image image.Image
}

// DecodeDir decodes the regular files of dir in parallel and returns the ones
// that decoded, sorted by path. Files with identical contents are kept once.
func DecodeDir(ctx context.Context, dir string, log *zap.Logger) ([]Decoded, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("variant directory missing", zap.String("dir", dir))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)

	results := make([]image.Image, len(paths))
	sums := make([]uint64, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, sum, err := decodeFile(path)
			if err != nil {
				log.Warn("skipping variant", zap.String("path", path), zap.Error(err))
				return nil
			}
			results[i], sums[i] = img, sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	decoded := make([]Decoded, 0, len(paths))
	seen := make(map[uint64]string, len(paths))
	for i, img := range results {
		if img == nil {
			continue
		}
		if first, dup := seen[sums[i]]; dup {
			log.Debug("duplicate variant", zap.String("path", paths[i]), zap.String("same_as", first))
			continue
		}
		seen[sums[i]] = paths[i]
		decoded = append(decoded, Decoded{Path: paths[i], Image: img})
	}
	return decoded, nil
}

// decodeFile decodes path and returns the xxhash of its raw bytes.
func decodeFile(path string) (image.Image, uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}
	return img, xxhash.Sum64(data), nil
}
