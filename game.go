package main

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync/atomic"
	"time"

	"auviewer/mapres"
	"auviewer/motion"
	"auviewer/playback"
	"auviewer/render"
	"auviewer/timeline"
	"auviewer/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelPixelsPerNotch converts ebiten wheel notches into the pixel deltas
// the viewport zoom step is tuned for.
const wheelPixelsPerNotch = 100

// Game is the ebiten game of one replay session. Update advances the clock
// and applies input; Draw paints; Layout delivers resize notifications.
type Game struct {
	ctx context.Context

	load   *loadState
	loaded atomic.Pointer[session]

	session  *session
	clock    *playback.Clock
	view     *viewport.Controller
	renderer *render.Renderer
	timeline *timeline.Index
	feed     *feedView

	layout     screenLayout
	pixelRatio float64
	palette    palette

	seeking        bool
	wasPlaying     bool
	shotPending    bool
	endNotified    bool
	cursorGrabbing bool
}

func newGame(ctx context.Context, st *loadState) *Game {
	return &Game{
		ctx:        ctx,
		load:       st,
		view:       viewport.New(),
		pixelRatio: 1,
		palette:    paletteFor(resolveTheme()),
	}
}

// start switches from the loading screen to playback of s.
func (g *Game) start(s *session) {
	d := s.Data
	g.session = s
	g.clock = playback.NewClock(d.Duration)
	g.clock.SetRate(gs.PlayRate)
	g.clock.SetMapZoom(gs.MapZoom)
	g.timeline = timeline.Build(d.Events)
	g.feed = layoutFeed(timeline.BuildFeed(d, g.timeline, time.Now()))
	g.renderer = render.New(render.Scene{
		Data:       d,
		Map:        s.Map,
		Mapper:     mapres.NewMapper(s.Map.Calibration),
		Motion:     motion.NewIndex(d.Moves),
		View:       g.view,
		Sprites:    gpuSprites{cache: s.Sprites, mapPath: s.MapPath},
		PixelRatio: g.pixelRatio,
	})
	ebiten.SetWindowTitle(fmt.Sprintf("%s - Among Us Replay", d.ID))
	setDiscordStatus(d)
	logDebug("session %v: %d players, %d events, %d moves", d.ID, len(d.Players), len(d.Events), len(d.Moves))
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if g.session == nil {
		if s := g.loaded.Load(); s != nil {
			g.start(s)
		}
		return nil
	}

	g.fitMapOnce()
	g.clock.Frame(time.Now())
	g.checkPlaybackEnd()
	g.updatePointer()
	g.updateKeys()
	return nil
}

// fitMapOnce resets the viewport the first time the map image is known.
func (g *Game) fitMapOnce() {
	if w, _ := g.view.MapSize(); w > 0 {
		return
	}
	img := g.session.Sprites.image(g.session.MapPath)
	if img == nil {
		return
	}
	b := img.Bounds()
	g.view.SetMapSize(float64(b.Dx()), float64(b.Dy()))
	g.view.Reset()
}

func (g *Game) checkPlaybackEnd() {
	playing := g.clock.Playing()
	focused := ebiten.IsFocused()
	if g.wasPlaying && !playing && g.clock.Current() >= g.clock.Duration() && !g.endNotified {
		g.endNotified = true
		if gs.Notifications && !focused {
			notifyDesktop("Replay finished", fmt.Sprintf("%s: %s", g.session.Data.ID, g.session.Data.EndReason))
		}
	}
	if playing {
		g.endNotified = false
	}
	g.wasPlaying = playing
}

// applyDefaultZoom jumps to the clock's default map zoom, keeping the
// current offset.
func applyDefaultZoom(v *viewport.Controller, c *playback.Clock) {
	v.Set(v.Offset(), c.MapZoom())
}

func (g *Game) cursor() viewport.Point {
	x, y := ebiten.CursorPosition()
	return viewport.Point{X: float64(x) / g.pixelRatio, Y: float64(y) / g.pixelRatio}
}

func (g *Game) updatePointer() {
	p := g.cursor()
	l := g.layout

	if _, dy := ebiten.Wheel(); dy != 0 {
		switch {
		case l.Feed.Contains(p.X, p.Y):
			g.feed.Scroll(dy, l.Feed.H)
		case l.Map.Contains(p.X, p.Y):
			g.view.Wheel(p, -dy*wheelPixelsPerNotch)
		}
	}

	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	just := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if g.updateControls(p.X, p.Y, pressed, just) {
		return
	}
	if just {
		switch {
		case l.Feed.Contains(p.X, p.Y):
			if sec, ok := g.feed.LinkAt(p.X-l.Feed.X, p.Y-l.Feed.Y); ok {
				g.clock.Seek(sec)
			}
		case l.Map.Contains(p.X, p.Y):
			g.view.PointerDown(p)
		}
	}
	if g.view.Dragging() {
		if pressed {
			g.view.PointerMove(p)
		} else {
			g.view.PointerUp()
		}
	}
	if grabbing := g.view.Dragging(); grabbing != g.cursorGrabbing {
		g.cursorGrabbing = grabbing
		if grabbing {
			ebiten.SetCursorShape(ebiten.CursorShapeMove)
		} else {
			ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		}
	}
}

func (g *Game) updateKeys() {
	c := g.clock
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		c.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		c.SkipBy(-gs.SkipSeconds)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		c.SkipBy(gs.SkipSeconds)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		c.SetRate(c.Rate() / 2)
		gs.PlayRate = c.Rate()
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		c.SetRate(c.Rate() * 2)
		gs.PlayRate = c.Rate()
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit0):
		c.SetRate(1)
		gs.PlayRate = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.view.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		applyDefaultZoom(g.view, c)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.shotPending = true
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		copyPosition(g.session.Data.ID, c.Current())
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		gs.ShowStats = !gs.ShowStats
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		openSourceInBrowser(g.session.Source)
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		openScreenshotDir()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.session == nil {
		g.drawLoading(screen)
		return
	}
	g.drawFrame(screen)
	if g.shotPending {
		g.shotPending = false
		g.screenshot(screen.Bounds())
	}
}

func (g *Game) drawFrame(screen *ebiten.Image) {
	now := time.Now()
	l, pr := g.layout, g.pixelRatio
	mapBounds := image.Rect(0, 0, int(math.Ceil(l.Map.W*pr)), int(math.Ceil(l.Map.H*pr)))
	if dst, ok := screen.SubImage(mapBounds).(*ebiten.Image); ok && !mapBounds.Empty() {
		g.renderer.Scene.PixelRatio = pr
		g.renderer.Scene.ShowStats = gs.ShowStats
		g.renderer.Draw(&screenCanvas{dst: dst, bg: g.palette.MapBG}, g.clock.Current(), now)
	}
	g.drawControls(screen)
	g.drawFeed(screen)
}

// screenshot redraws the current frame offscreen and saves it.
func (g *Game) screenshot(bounds image.Rectangle) {
	off := ebiten.NewImage(bounds.Dx(), bounds.Dy())
	defer off.Deallocate()
	g.drawFrame(off)
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	off.ReadPixels(rgba.Pix)
	name := g.session.Data.ID
	go takeScreenshot(rgba, name, g.clock.Current())
}

func (g *Game) drawLoading(screen *ebiten.Image) {
	screen.Fill(g.palette.PanelBG)
	msg := fmt.Sprintf("Loading... (state: %d)", int(g.load.Stage()))
	if err := g.load.Err(); err != nil {
		msg = err.Error()
	}
	f := faceFor(16*g.pixelRatio, false)
	drawTextBaseline(screen, msg, 16*g.pixelRatio, 32*g.pixelRatio, f, g.palette.Text)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			g.pixelRatio = s
		}
	}
	g.layout = computeLayout(float64(outsideWidth), float64(outsideHeight), float64(gs.FeedWidth))
	if w, h := g.view.ViewSize(); w != g.layout.Map.W || h != g.layout.Map.H {
		g.view.Resize(g.layout.Map.W, g.layout.Map.H)
	}

	if outsideWidth > 512 && outsideHeight > 384 {
		gs.WindowWidth = outsideWidth
		gs.WindowHeight = outsideHeight
	}
	return int(math.Ceil(float64(outsideWidth) * g.pixelRatio)), int(math.Ceil(float64(outsideHeight) * g.pixelRatio))
}

func runGame(g *Game) error {
	ebiten.SetWindowTitle("Among Us Replay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: false})
	saveSettings()
	return err
}
