package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
)

var doDebug bool

func main() {
	var (
		src  sourceOptions
		snap snapshotOptions
	)
	flag.StringVar(&src.Server, "server", "", "replay server: cdn.rinsuki.net, local or input-file")
	flag.StringVar(&src.Version, "v", "1", "replay format version for -server cdn.rinsuki.net")
	flag.StringVar(&src.ID, "id", "", "replay id for -server cdn.rinsuki.net")
	flag.StringVar(&src.File, "file", "", "play a local replay file (.msgpack.gz, .msgpack or .json)")
	base := flag.String("base", "", "resource base URL or directory (default from settings)")
	hq := flag.Bool("hq", false, "use high quality map images")
	flag.BoolVar(&doDebug, "debug", false, "verbose/debug logging")
	flag.Float64Var(&snap.Second, "snapshot", -1, "render the frame at this second to -out and exit")
	flag.StringVar(&snap.Out, "out", "frame.png", "output file for -snapshot")
	flag.IntVar(&snap.Width, "width", 1280, "frame width for -snapshot")
	flag.IntVar(&snap.Height, "height", 720, "frame height for -snapshot")
	flag.BoolVar(&snap.Stats, "stats", false, "draw the stats overlay in -snapshot")
	flag.Parse()

	setupLogging(doDebug)
	loadSettings()
	if *base != "" {
		gs.ResourceBase = *base
	}
	if *hq {
		gs.HQMaps = true
	}
	src.Base = gs.ResourceBase
	if src.Server == "" && src.File == "" {
		src.Server = serverInputFile
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source, err := resolveSource(src, pickReplayFile)
	if err != nil {
		if errors.Is(err, errDialogCancelled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	logDebug("replay source: %v", source)

	if snap.Second >= 0 {
		if err := runSnapshot(ctx, source, snap); err != nil {
			logError("%v", err)
			os.Exit(1)
		}
		return
	}

	initClipboard()
	initFont()
	if gs.DiscordRPC {
		if err := initDiscordRPC(ctx, gs.DiscordAppID); err != nil {
			logWarn("%v", err)
		}
	}
	if gs.WindowWidth < 512 {
		gs.WindowWidth = initialWindowW
	}
	if gs.WindowHeight < 384 {
		gs.WindowHeight = initialWindowH
	}
	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)

	st := &loadState{}
	g := newGame(ctx, st)
	go func() {
		s, err := loadSession(ctx, source, gs.ResourceBase, gs.HQMaps, st)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logError("load %v: %v", source, err)
			st.fail(err)
			showLoadError(err)
			return
		}
		g.loaded.Store(s)
	}()

	if err := runGame(g); err != nil {
		log.Printf("ebiten: %v", err)
	}
}
