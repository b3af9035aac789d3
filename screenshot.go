package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"auviewer/timeline"

	"github.com/skratchdot/open-golang/open"
)

func screenshotDir() string {
	return filepath.Join(dataDirPath, "Screenshots")
}

// screenshotName builds the file name for a frame of replay id at second
// sec, taken at now.
func screenshotName(id string, sec float64, now time.Time) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, id)
	if base == "" {
		base = "replay"
	}
	if len(base) > 48 {
		base = base[:48]
	}
	at := strings.ReplaceAll(timeline.PaddedClock(sec), ":", "m") + "s"
	return fmt.Sprintf("%s__%s__%s.png", base, at, now.Format("2006-01-02-15-04-05"))
}

func takeScreenshot(img image.Image, id string, sec float64) {
	dir := screenshotDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logError("screenshot: create %v: %v", dir, err)
		return
	}
	fn := filepath.Join(dir, screenshotName(id, sec, time.Now()))
	if err := writePNG(fn, img); err != nil {
		logError("screenshot: %v", err)
		return
	}
	logDebug("snapshot taken: %s", filepath.Base(fn))
}

func writePNG(fn string, img image.Image) error {
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("create %v: %w", fn, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %v: %w", fn, err)
	}
	return f.Close()
}

func openScreenshotDir() {
	dir := screenshotDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logError("screenshot: create %v: %v", dir, err)
		return
	}
	if err := open.Run(dir); err != nil {
		logError("open %v: %v", dir, err)
	}
}
