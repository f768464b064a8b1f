// Package main provides a single-curve viewer for checking spirograph parameters.
//
// Usage:
//
//	go run cmd/verify_spiro/main.go [flags]
//
// Flags:
//
//	--small <n>      Small (rolling) radius (default: 50)
//	--big <n>        Big (fixed) radius (default: 75)
//	--l <ratio>      Distance ratio in [0, 1) (default: 0.5)
//	--vx, --vy <n>   Velocity per tick (default: 7, 5)
//	--color <hex>    Line color (default: "#FFA500")
//	--width <px>     Line width (default: 1.5)
//	--verbose        Enable verbose logging
//
// Any key, mouse button or mouse motion closes the window.
//
// Purpose:
//   - Inspect the shape produced by a specific radius pair
//   - Print gcd, revolution count and point count
//   - Watch bounce behavior without the random scene
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/spiros/pkg/canvas"
	"github.com/decker502/spiros/pkg/config"
	"github.com/decker502/spiros/pkg/ecs"
	"github.com/decker502/spiros/pkg/game"
	"github.com/decker502/spiros/pkg/spiro"
	"github.com/jbeda/geom"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

var (
	smallFlag   = flag.Int("small", 50, "Small (rolling) radius")
	bigFlag     = flag.Int("big", 75, "Big (fixed) radius")
	ratioFlag   = flag.Float64("l", 0.5, "Distance ratio in [0, 1)")
	vxFlag      = flag.Int("vx", 7, "Horizontal velocity per tick")
	vyFlag      = flag.Int("vy", 5, "Vertical velocity per tick")
	colorFlag   = flag.String("color", "#FFA500", "Line color")
	widthFlag   = flag.Float64("width", 1.5, "Line width")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	params, err := spiro.NewParams(geom.Coord{X: screenWidth / 2, Y: screenHeight / 2}, *smallFlag, *bigFlag, *ratioFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid parameters: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("small=%d big=%d l=%.3f\n", params.SmallRadius, params.BigRadius, params.DistanceRatio)
	fmt.Printf("gcd=%d k=%.4f revolutions=%d points=%d\n",
		spiro.GCD(params.SmallRadius, params.BigRadius), params.K(),
		params.RevolutionCount(), len(params.Points()))

	cfg := config.DefaultScreensaverConfig()
	window, err := canvas.NewWindow(canvas.WindowConfig{
		Title:      "Spiro Verify",
		Background: cfg.BackgroundColor,
		Width:      screenWidth,
		Height:     screenHeight,
		InputGrace: cfg.InputGrace(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "window: %v\n", err)
		os.Exit(1)
	}

	sm := game.NewSceneManager(ecs.NewEntityManager(), window, cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	sm.AddCurve(params, *vxFlag, *vyFlag, *widthFlag, *colorFlag)
	if err := sm.DrawAll(); err != nil {
		fmt.Fprintf(os.Stderr, "draw: %v\n", err)
		os.Exit(1)
	}
	sm.StartAnimation()
	sm.BindExit()

	if err := window.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(1)
	}
}
