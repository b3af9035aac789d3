package main

import (
	"bytes"
	"log"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var regularFaceSource, monoFaceSource *text.GoTextFaceSource

func initFont() {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	regularFaceSource = regular

	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		log.Fatalf("failed to parse font: %v", err)
	}
	monoFaceSource = mono
}

type faceKey struct {
	size float64
	mono bool
}

var faceCache = map[faceKey]*text.GoTextFace{}

func faceFor(size float64, mono bool) *text.GoTextFace {
	k := faceKey{size, mono}
	if f, ok := faceCache[k]; ok {
		return f
	}
	src := regularFaceSource
	if mono {
		src = monoFaceSource
	}
	f := &text.GoTextFace{Source: src, Size: size}
	faceCache[k] = f
	return f
}

func measure(s string, f *text.GoTextFace) (float64, float64) {
	return text.Measure(s, f, 0)
}
