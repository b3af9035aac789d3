package main

import "image/color"

// palette is the colour set of the controls bar and event feed. The map
// background stays black in both themes like the replay artwork expects.
type palette struct {
	MapBG     color.RGBA
	PanelBG   color.RGBA
	Text      color.RGBA
	Muted     color.RGBA
	Link      color.RGBA
	SeekBG    color.RGBA
	SeekFill  color.RGBA
	Meeting   color.RGBA
	Button    color.RGBA
	Separator color.RGBA
}

var darkPalette = palette{
	MapBG:     color.RGBA{0x00, 0x00, 0x00, 0xff},
	PanelBG:   color.RGBA{0x1e, 0x1e, 0x22, 0xff},
	Text:      color.RGBA{0xee, 0xee, 0xee, 0xff},
	Muted:     color.RGBA{0x99, 0x99, 0xa0, 0xff},
	Link:      color.RGBA{0x6c, 0xb4, 0xff, 0xff},
	SeekBG:    color.RGBA{0x44, 0x44, 0x4a, 0xff},
	SeekFill:  color.RGBA{0x3d, 0x8b, 0xfd, 0xff},
	Meeting:   color.RGBA{0xff, 0xa5, 0x00, 0xa0},
	Button:    color.RGBA{0x33, 0x33, 0x3a, 0xff},
	Separator: color.RGBA{0x33, 0x33, 0x3a, 0xff},
}

var lightPalette = palette{
	MapBG:     color.RGBA{0x00, 0x00, 0x00, 0xff},
	PanelBG:   color.RGBA{0xf4, 0xf4, 0xf6, 0xff},
	Text:      color.RGBA{0x1a, 0x1a, 0x1a, 0xff},
	Muted:     color.RGBA{0x66, 0x66, 0x6e, 0xff},
	Link:      color.RGBA{0x00, 0x5c, 0xc5, 0xff},
	SeekBG:    color.RGBA{0xcc, 0xcc, 0xd2, 0xff},
	SeekFill:  color.RGBA{0x1a, 0x73, 0xe8, 0xff},
	Meeting:   color.RGBA{0xff, 0x8c, 0x00, 0xa0},
	Button:    color.RGBA{0xe0, 0xe0, 0xe6, 0xff},
	Separator: color.RGBA{0xd0, 0xd0, 0xd6, 0xff},
}

func paletteFor(theme string) palette {
	if theme == "light" {
		return lightPalette
	}
	return darkPalette
}
