package main

import (
	"fmt"

	"auviewer/timeline"

	"github.com/pkg/browser"
	clipboard "golang.design/x/clipboard"
)

var clipboardReady bool

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		logWarn("clipboard init: %v", err)
		return
	}
	clipboardReady = true
}

func positionText(id string, sec float64) string {
	return fmt.Sprintf("%s @ %s", id, timeline.PaddedClock(sec))
}

// copyPosition puts "<replay id> @ mm:ss" on the clipboard.
func copyPosition(id string, sec float64) {
	if !clipboardReady {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(positionText(id, sec)))
}

// openSourceInBrowser opens the replay download URL. Local files have none.
func openSourceInBrowser(src replaySource) {
	if src.URL == "" || !isRemote(src.URL) {
		logWarn("replay %v has no URL to open", src)
		return
	}
	if err := browser.OpenURL(src.URL); err != nil {
		logError("open %v: %v", src.URL, err)
	}
}
