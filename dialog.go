//go:build !js

package main

import (
	"errors"

	"github.com/sqweek/dialog"
)

var errDialogCancelled = errors.New("file dialog cancelled")

func pickReplayFile() (string, error) {
	filename, err := dialog.File().Title("Open replay").Filter("Replays", "gz", "msgpack", "json").Load()
	if err != nil {
		if err == dialog.Cancelled {
			return "", errDialogCancelled
		}
		return "", err
	}
	return filename, nil
}

// showLoadError blocks on a message box describing err.
func showLoadError(err error) {
	dialog.Message("%s", err.Error()).Title("Among Us Replay").Error()
}
