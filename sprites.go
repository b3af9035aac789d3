package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"runtime"
	"sync"

	"auviewer/mapres"
	"auviewer/render"
	"auviewer/replay"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// spriteCache holds decoded resource images keyed by resource path. GPU
// copies are made lazily on the frame goroutine.
type spriteCache struct {
	base string

	mu     sync.Mutex
	images map[string]image.Image
	failed map[string]bool

	gpu map[string]*ebiten.Image
}

func newSpriteCache(base string) *spriteCache {
	return &spriteCache{
		base:   base,
		images: make(map[string]image.Image),
		failed: make(map[string]bool),
		gpu:    make(map[string]*ebiten.Image),
	}
}

func (c *spriteCache) load(ctx context.Context, path string) error {
	data, err := fetch(ctx, resourceSource(c.base, path), false, nil)
	if err != nil {
		c.mu.Lock()
		c.failed[path] = true
		c.mu.Unlock()
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		c.mu.Lock()
		c.failed[path] = true
		c.mu.Unlock()
		return fmt.Errorf("decode %v: %w", path, err)
	}
	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return nil
}

// preload fetches paths with bounded parallelism. It returns the first
// error but keeps loading the rest.
func (c *spriteCache) preload(ctx context.Context, paths []string) error {
	var (
		errMu    sync.Mutex
		firstErr error
	)
	wg := sizedwaitgroup.New(runtime.NumCPU())
	for _, p := range paths {
		wg.Add()
		go func(p string) {
			defer wg.Done()
			if err := c.load(ctx, p); err != nil {
				logWarn("sprite %v: %v", p, err)
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(p)
	}
	wg.Wait()
	return firstErr
}

// image returns the decoded image for path, starting a background load on
// first use of a path that was not preloaded.
func (c *spriteCache) image(path string) image.Image {
	c.mu.Lock()
	img, ok := c.images[path]
	failed := c.failed[path]
	if !ok && !failed {
		c.failed[path] = true
		go func() {
			if err := c.load(context.Background(), path); err != nil {
				logWarn("sprite %v: %v", path, err)
				return
			}
			c.mu.Lock()
			delete(c.failed, path)
			c.mu.Unlock()
		}()
	}
	c.mu.Unlock()
	return img
}

// ebitenImage returns the GPU copy of path. Call it from Draw only.
func (c *spriteCache) ebitenImage(path string) *ebiten.Image {
	if img, ok := c.gpu[path]; ok {
		return img
	}
	src := c.image(path)
	if src == nil {
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	c.gpu[path] = img
	return img
}

func avatarPath(clr replay.Color, ghost bool) (string, bool) {
	i := clr.Index()
	if i < 0 {
		logFrameWarn("no sprite for colour %q", clr)
		return "", false
	}
	kind := mapres.SpritePlayer
	if ghost {
		kind = mapres.SpriteGhost
	}
	return mapres.SpritePath(kind, i), true
}

// imageSprites serves decoded images to render.ImageCanvas.
type imageSprites struct {
	cache   *spriteCache
	mapPath string
}

func (s imageSprites) Map() render.Image {
	if img := s.cache.image(s.mapPath); img != nil {
		return img
	}
	return nil
}

func (s imageSprites) Avatar(clr replay.Color, ghost bool) render.Image {
	path, ok := avatarPath(clr, ghost)
	if !ok {
		return nil
	}
	if img := s.cache.image(path); img != nil {
		return img
	}
	return nil
}

// gpuSprites serves ebiten images to the window canvas.
type gpuSprites struct {
	cache   *spriteCache
	mapPath string
}

func (s gpuSprites) Map() render.Image {
	if img := s.cache.ebitenImage(s.mapPath); img != nil {
		return img
	}
	return nil
}

func (s gpuSprites) Avatar(clr replay.Color, ghost bool) render.Image {
	path, ok := avatarPath(clr, ghost)
	if !ok {
		return nil
	}
	if img := s.cache.ebitenImage(path); img != nil {
		return img
	}
	return nil
}
