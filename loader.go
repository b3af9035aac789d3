package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"auviewer/mapres"
	"auviewer/replay"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

const (
	serverRinsuki   = "cdn.rinsuki.net"
	serverLocal     = "local"
	serverInputFile = "input-file"

	localReplayFile = "replay.msgpack.gz"
	resConfigPath   = "res/config.json"
)

var (
	errInvalidVersion = errors.New("invalid v")
	errInvalidID      = errors.New("id is invalid")
	errUnknownServer  = errors.New("unknown server")
)

var replayIDPattern = regexp.MustCompile(`^([a-z0-9]{1,20})\.(2[0-9]{3})([0-9]{2})([0-9]{2})\.([0-9]{6}\.[0-9a-f]{8})$`)

// replaySource is where a replay is read from: a URL or a local path.
type replaySource struct {
	URL  string
	Path string
}

func (s replaySource) String() string {
	if s.Path != "" {
		return s.Path
	}
	return s.URL
}

// sourceOptions carries the command line selection of a replay.
type sourceOptions struct {
	Server  string
	Version string
	ID      string
	File    string
	Base    string
}

// resolveSource turns the replay selection into a concrete source. pick is
// only called for the input-file server.
func resolveSource(o sourceOptions, pick func() (string, error)) (replaySource, error) {
	if o.File != "" {
		return replaySource{Path: o.File}, nil
	}
	switch o.Server {
	case serverRinsuki:
		if o.Version != "1" {
			return replaySource{}, errInvalidVersion
		}
		m := replayIDPattern.FindStringSubmatch(o.ID)
		if m == nil {
			return replaySource{}, errInvalidID
		}
		user, year, month, day := m[1], m[2], m[3], m[4]
		return replaySource{URL: fmt.Sprintf("https://%s/internal/aureplayer/v%s/%s/%s/%s/%s/replay.v%s.%s.msgpack.gz",
			serverRinsuki, o.Version, user, year, month, day, o.Version, o.ID)}, nil
	case serverLocal:
		return resourceSource(o.Base, localReplayFile), nil
	case serverInputFile:
		path, err := pick()
		if err != nil {
			return replaySource{}, err
		}
		return replaySource{Path: path}, nil
	default:
		return replaySource{}, errUnknownServer
	}
}

func isRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// resourceSource joins rel onto base, which may be a URL prefix or a
// local directory.
func resourceSource(base, rel string) replaySource {
	if isRemote(base) {
		return replaySource{URL: base + rel}
	}
	return replaySource{Path: filepath.Join(base, filepath.FromSlash(rel))}
}

// statusError is a non-success HTTP response.
type statusError struct {
	Code     int
	resource bool
}

func (e *statusError) Error() string {
	if e.resource {
		return fmt.Sprintf("ResConfig Server returned invalid status code(%d)", e.Code)
	}
	return fmt.Sprintf("Server returned invalid status code (%d)", e.Code)
}

var httpClient = &http.Client{Timeout: 2 * time.Minute}

// fetch reads src fully. onResponse runs once the response status has
// been accepted, before the body is read.
func fetch(ctx context.Context, src replaySource, resource bool, onResponse func()) ([]byte, error) {
	if src.Path != "" {
		if onResponse != nil {
			onResponse()
		}
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("read %v: %w", src.Path, err)
		}
		return data, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %v: %w", src.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, &statusError{Code: resp.StatusCode, resource: resource}
	}
	if onResponse != nil {
		onResponse()
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %v: %w", src.URL, err)
	}
	return data, nil
}

// loadState is the load progress shared between the loader goroutines and
// the frame loop.
type loadState struct {
	stage atomic.Int32
	err   atomic.Pointer[error]
}

func (s *loadState) set(st replay.Stage) {
	s.stage.Store(int32(st))
	logDebug("load stage: %v", st)
}

func (s *loadState) Stage() replay.Stage { return replay.Stage(s.stage.Load()) }

func (s *loadState) fail(err error) { s.err.Store(&err) }

func (s *loadState) Err() error {
	if p := s.err.Load(); p != nil {
		return *p
	}
	return nil
}

// session is a loaded replay with the resources to draw it.
type session struct {
	Source  replaySource
	Data    *replay.Dataset
	Map     mapres.Map
	MapPath string
	Sprites *spriteCache
}

// loadReplay fetches and decodes a replay.
func loadReplay(ctx context.Context, src replaySource, st *loadState) (*replay.Dataset, error) {
	st.set(replay.StageFetch)
	data, err := fetch(ctx, src, false, func() { st.set(replay.StageDownloading) })
	if err != nil {
		return nil, err
	}
	start := time.Now()
	d, err := replay.Decode(data, st.set)
	if err != nil {
		return nil, err
	}
	logDebug("decoded %v of replay in %v", humanize.Bytes(uint64(len(data))), time.Since(start))
	if d.ID == "" {
		d.ID = strings.TrimSuffix(filepath.Base(src.String()), ".msgpack.gz")
	}
	for _, p := range d.Check() {
		logWarn("replay: %s", p)
	}
	return d, nil
}

// loadCatalog fetches the resource configuration.
func loadCatalog(ctx context.Context, base string, hq bool) (*mapres.Catalog, error) {
	path := resConfigPath
	if hq {
		path = mapres.HQPath(path)
	}
	data, err := fetch(ctx, resourceSource(base, path), true, nil)
	if err != nil {
		return nil, err
	}
	return mapres.ParseCatalog(data)
}

// loadSession loads the replay and the resource configuration in
// parallel, then preloads every image the first frames need.
func loadSession(ctx context.Context, src replaySource, base string, hq bool, st *loadState) (*session, error) {
	var (
		data    *replay.Dataset
		catalog *mapres.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data, err = loadReplay(gctx, src, st)
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = loadCatalog(gctx, base, hq)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m, err := catalog.Map(data.Settings.Map)
	if err != nil {
		return nil, err
	}
	mapPath := m.Path
	if hq {
		mapPath = mapres.HQPath(mapPath)
	}
	s := &session{
		Source:  src,
		Data:    data,
		Map:     m,
		MapPath: mapPath,
		Sprites: newSpriteCache(base),
	}
	if err := s.Sprites.preload(ctx, preloadPaths(data, mapPath)); err != nil {
		logWarn("preload: %v", err)
	}
	st.set(replay.StageSuccess)
	return s, nil
}

// preloadPaths lists the player sprite of every colour in the roster, the
// body and ghost sprites of players that die, and the map image.
func preloadPaths(d *replay.Dataset, mapPath string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range d.Players {
		i := p.Color.Index()
		if i < 0 {
			logWarn("player %q has unknown colour %q", p.Name, p.Color)
			continue
		}
		add(mapres.SpritePath(mapres.SpritePlayer, i))
		if p.DeadAt != nil {
			add(mapres.SpritePath(mapres.SpriteBody, i))
			add(mapres.SpritePath(mapres.SpriteGhost, i))
		}
	}
	add(mapPath)
	return out
}
