package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"auviewer/playback"

	dark "github.com/thiagokokada/dark-mode-go"
)

const SETTINGS_VERSION = 1

const (
	initialWindowW = 1280
	initialWindowH = 800

	defaultResourceBase = "https://cdn.jsdelivr.net/gh/Smertig/among-us-replayer@8d3cf06807f100953be72234b69e2042f6c3f3da/"
)

var gs settings = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

var gsdef settings = settings{
	Version: SETTINGS_VERSION,

	WindowWidth:  initialWindowW,
	WindowHeight: initialWindowH,

	PlayRate:     1,
	MapZoom:      0.25,
	SkipSeconds:  5,
	FeedWidth:    360,
	ResourceBase: defaultResourceBase,

	HQMaps:        false,
	ShowStats:     false,
	Notifications: true,
	DiscordRPC:    false,
}

type settings struct {
	Version int

	WindowWidth  int
	WindowHeight int

	// PlayRate is the playback speed multiplier restored on start.
	PlayRate float64
	// MapZoom is the default map zoom carried by the clock.
	MapZoom     float64
	SkipSeconds float64
	FeedWidth   int

	// ResourceBase is the URL prefix of res/config.json and the sprites.
	ResourceBase string
	HQMaps       bool
	ShowStats    bool

	// Theme is "dark" or "light"; empty follows the desktop.
	Theme string

	Notifications bool
	DiscordRPC    bool
	// DiscordAppID is the Discord application presence is reported under.
	// Presence stays off while it is empty.
	DiscordAppID string
}

const settingsFile = "settings.json"

func loadSettings() bool {
	path := filepath.Join(dataDirPath, settingsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		gs = gsdef
		settingsLoaded = false
		return false
	}

	tmp := gsdef
	if err := json.Unmarshal(data, &tmp); err != nil {
		logWarn("load settings: %v", err)
		gs = gsdef
		settingsLoaded = false
		return false
	}
	if tmp.Version != SETTINGS_VERSION {
		gs = gsdef
		settingsLoaded = false
		return false
	}
	gs = tmp
	settingsLoaded = true

	if gs.PlayRate < playback.MinRate || gs.PlayRate > playback.MaxRate {
		gs.PlayRate = gsdef.PlayRate
	}
	if gs.MapZoom <= 0 {
		gs.MapZoom = gsdef.MapZoom
	}
	if gs.SkipSeconds <= 0 {
		gs.SkipSeconds = gsdef.SkipSeconds
	}
	if gs.FeedWidth < 120 {
		gs.FeedWidth = gsdef.FeedWidth
	}
	if gs.ResourceBase == "" {
		gs.ResourceBase = gsdef.ResourceBase
	}
	return settingsLoaded
}

func saveSettings() {
	if isWASM {
		return
	}
	if err := ensureDataDir(); err != nil {
		logError("save settings: %v", err)
		return
	}
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		logError("save settings: %v", err)
		return
	}
	path := filepath.Join(dataDirPath, settingsFile)
	if err := os.WriteFile(path+".tmp", data, 0644); err != nil {
		logError("save settings: %v", err)
		return
	}
	if err := os.Rename(path+".tmp", path); err != nil {
		logError("save settings: %v", err)
	}
}

// resolveTheme returns the configured theme, asking the desktop when the
// setting is empty. Detection failures fall back to dark.
func resolveTheme() string {
	switch gs.Theme {
	case "dark", "light":
		return gs.Theme
	}
	darkMode, err := dark.IsDarkMode()
	if err != nil {
		logDebug("dark mode detection: %v", err)
		return "dark"
	}
	if darkMode {
		return "dark"
	}
	return "light"
}
