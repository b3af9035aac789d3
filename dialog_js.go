//go:build js

package main

import "errors"

var errDialogCancelled = errors.New("file dialog cancelled")

func pickReplayFile() (string, error) {
	return "", errors.New("file picking is not available in the browser build")
}

func showLoadError(err error) {
	logError("%v", err)
}
