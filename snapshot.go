package main

import (
	"context"
	"fmt"
	"time"

	"auviewer/mapres"
	"auviewer/motion"
	"auviewer/playback"
	"auviewer/render"
	"auviewer/viewport"
)

// snapshotOptions selects a headless frame export.
type snapshotOptions struct {
	Second float64
	Out    string
	Width  int
	Height int
	Stats  bool
}

// renderSnapshot draws the frame at o.Second of s onto a software canvas.
func renderSnapshot(s *session, o snapshotOptions) *render.ImageCanvas {
	clock := playback.NewClock(s.Data.Duration)
	clock.Seek(o.Second)

	view := viewport.New()
	view.Resize(float64(o.Width), float64(o.Height))
	sprites := imageSprites{cache: s.Sprites, mapPath: s.MapPath}
	if img := s.Sprites.image(s.MapPath); img != nil {
		b := img.Bounds()
		view.SetMapSize(float64(b.Dx()), float64(b.Dy()))
		view.Reset()
	}

	r := render.New(render.Scene{
		Data:       s.Data,
		Map:        s.Map,
		Mapper:     mapres.NewMapper(s.Map.Calibration),
		Motion:     motion.NewIndex(s.Data.Moves),
		View:       view,
		Sprites:    sprites,
		PixelRatio: 1,
		ShowStats:  o.Stats,
	})
	c := render.NewImageCanvas(o.Width, o.Height)
	r.Draw(c, clock.Current(), time.Now())
	return c
}

func runSnapshot(ctx context.Context, src replaySource, o snapshotOptions) error {
	st := &loadState{}
	s, err := loadSession(ctx, src, gs.ResourceBase, gs.HQMaps, st)
	if err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("snapshot: invalid size %dx%d", o.Width, o.Height)
	}
	c := renderSnapshot(s, o)
	if err := writePNG(o.Out, c.Dst); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	logDebug("wrote %v at %.2fs", o.Out, o.Second)
	return nil
}
