package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ellery/starcalc/internal/config"
	"github.com/ellery/starcalc/internal/keypad"
	"github.com/ellery/starcalc/internal/util"
	"github.com/go-errors/errors"
	isatty "github.com/mattn/go-isatty"
	"github.com/micro-editor/tcell/v2"
)

var (
	flagVersion   = flag.Bool("version", false, "Show the version number and information")
	flagConfigDir = flag.String("config-dir", "", "Specify a custom location for the configuration directory")
	flagDebug     = flag.Bool("debug", false, "Enable debug mode (prints debug info to ./log.txt)")
	flagNoGalaxy  = flag.Bool("no-galaxy", false, "Disable the animated background")
	flagFPS       = flag.Int("fps", 0, "Override the galaxy frame rate")
	flagSeed      = flag.Int64("seed", 1, "Seed for the galaxy")
)

// InitFlags parses the command line
func InitFlags() {
	flag.Usage = func() {
		fmt.Println("Usage: starcalc [OPTION]...")
		fmt.Println("       echo EXPRESSION | starcalc")
		fmt.Println("-config-dir dir")
		fmt.Println("    \tSpecify a custom location for the configuration directory")
		fmt.Println("-debug")
		fmt.Println("    \tEnable debug mode (enables logging to ./log.txt)")
		fmt.Println("-no-galaxy")
		fmt.Println("    \tDisable the animated background")
		fmt.Println("-fps n")
		fmt.Println("    \tOverride the galaxy frame rate")
		fmt.Println("-seed n")
		fmt.Println("    \tSeed for the galaxy")
		fmt.Println("-version")
		fmt.Println("    \tShow the version number and information and exit")
		fmt.Print("\nWhen standard input is not a terminal each line is evaluated and its\nresult printed; the exit status is 1 if any line failed.\n")
	}
	flag.Parse()

	if *flagVersion {
		fmt.Println("Version:", util.VersionString())
		fmt.Println("Commit hash:", util.CommitHash)
		fmt.Println("Compiled on", util.CompileDate)
		os.Exit(0)
	}

	if util.Debug == "OFF" && *flagDebug {
		util.Debug = "ON"
	}
}

func main() {
	InitFlags()
	InitLog()

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		os.Exit(batch(os.Stdin, os.Stdout))
	}

	if err := config.InitConfigDir(*flagConfigDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	if err := config.EnsureSettingsFile(); err != nil {
		log.Printf("STARCALC: could not write default settings: %v", err)
	}
	settings := config.LoadSettings()

	os.Exit(run(settings))
}

func batch(r io.Reader, w io.Writer) int {
	failed, err := runBatch(r, w)
	if err != nil {
		fmt.Fprintln(os.Stderr, "starcalc:", err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed. The returned channel is closed when it stops.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// run drives the calculator screen until the user quits
func run(settings *config.Settings) (rc int) {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Println(err)
		fmt.Println("Fatal: starcalc could not initialize a Screen.")
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Println(err)
		fmt.Println("Fatal: starcalc could not initialize a Screen.")
		return 1
	}
	screen.EnableMouse()
	screen.HideCursor()

	defer func() {
		if err := recover(); err != nil {
			screen.Fini()
			fmt.Println("starcalc encountered an error:", errors.Wrap(err, 2).ErrorStack())
			rc = 1
		}
	}()

	clip, err := keypad.SystemClipboard()
	if err != nil {
		log.Printf("STARCALC: no system clipboard, copy stays inside starcalc: %v", err)
		clip = keypad.NewMemoryClipboard()
	}

	draw := make(chan struct{}, 1)
	kp := keypad.New(screen, keypad.Options{
		Settings:  settings,
		Clipboard: clip,
		NoGalaxy:  *flagNoGalaxy,
		FPS:       *flagFPS,
		Seed:      *flagSeed,
		Redraw:    draw,
	})

	running := true
	kp.OnExit = func() {
		log.Println("STARCALC: exit selected")
		running = false
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	kp.Start(ctx)
	defer kp.Stop()

	// Settings edits are applied on the UI goroutine
	reload := make(chan struct{}, 1)
	watcher, err := config.NewSettingsWatcher(config.ConfigDir, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	if err == nil {
		if err := watcher.Start(); err != nil {
			log.Printf("STARCALC: not watching settings: %v", err)
		} else {
			defer watcher.Stop()
		}
	} else {
		log.Printf("STARCALC: not watching settings: %v", err)
	}

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGHUP)
	defer signal.Stop(sigterm)

	for running {
		kp.Render(screen)
		screen.Show()

		select {
		case ev, ok := <-events:
			if !ok {
				running = false
				break
			}
			if e, isErr := ev.(*tcell.EventError); isErr {
				log.Println("STARCALC: tcell event error:", e.Error())
				if e.Err() == io.EOF {
					running = false
				}
				break
			}
			if _, isResize := ev.(*tcell.EventResize); isResize {
				screen.Sync()
			}
			kp.HandleEvent(ev)

		case <-draw:
			// Galaxy frame

		case <-reload:
			s, errs := config.ReloadSettings()
			for _, e := range errs {
				log.Printf("STARCALC Settings: %v", e)
			}
			if s == nil {
				// Keep what's running until the file is fixed
				break
			}
			log.Println("STARCALC Settings: reloaded")
			for _, e := range kp.ApplySettings(s) {
				log.Printf("STARCALC Settings: %v", e)
			}

		case <-sigterm:
			running = false
		}
	}

	kp.Stop()
	screen.Fini()
	return 0
}
