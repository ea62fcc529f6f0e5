// umbra - software 3D renderer
// Render scene files and glTF models to PNG, or view them in the terminal.
//
// Controls (with -view):
//
//	A/D, arrows - Orbit around the scene
//	W/S         - Raise/lower the camera
//	Scroll, +/- - Zoom in/out
//	M           - Cycle render mode
//	T           - Toggle textures
//	H           - Toggle shadows
//	R           - Reset view
//	Esc, Q      - Quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/taigrr/umbra/pkg/config"
	"github.com/taigrr/umbra/pkg/math3d"
	"github.com/taigrr/umbra/pkg/render"
	"github.com/taigrr/umbra/pkg/scene"
)

var (
	outPath   = flag.String("o", "umbra.png", "Output PNG path")
	depthPath = flag.String("depth", "", "Write the shadow map of the first shadow casting light to this PNG")
	modeName  = flag.String("mode", "", "Render mode: wireframe, monochrome, plain or interpolated")
	shadows   = flag.Bool("shadows", false, "Enable shadows")
	textures  = flag.Bool("textures", true, "Enable textures")
	watch     = flag.Bool("watch", false, "Re-render whenever the scene file changes")
	view      = flag.Bool("view", false, "Interactive terminal view")
	targetFPS = flag.Int("fps", 30, "Target FPS of the terminal view")
	verbose   = flag.Bool("v", false, "Debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "umbra - software 3D renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: umbra [options] [scene.toml|scene.yaml|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a scene a built-in demo scene is rendered.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls (-view):\n")
		fmt.Fprintf(os.Stderr, "  A/D, arrows - Orbit\n")
		fmt.Fprintf(os.Stderr, "  W/S         - Raise/lower camera\n")
		fmt.Fprintf(os.Stderr, "  Scroll, +/- - Zoom\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle render mode\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle textures\n")
		fmt.Fprintf(os.Stderr, "  H           - Toggle shadows\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Esc, Q      - Quit\n")
	}
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "umbra",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if err := run(flag.Arg(0), logger); err != nil {
		logger.Error("umbra failed", "err", err)
		os.Exit(1)
	}
}

func run(path string, logger *log.Logger) error {
	s, err := loadScene(path, logger)
	if err != nil {
		return err
	}
	if err := applyFlags(s); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if *view {
		return runView(ctx, s, logger)
	}

	r := render.NewRenderer(render.WithLogger(logger))
	if err := renderToFile(r, s, logger); err != nil {
		return err
	}
	if !*watch {
		return nil
	}
	if !isSceneFile(path) {
		return errors.New("-watch needs a scene file")
	}
	logger.Info("watching scene", "path", path)
	return config.Watch(ctx, path, logger, func(s *config.Scene) {
		if err := applyFlags(s); err != nil {
			logger.Error("invalid flags", "err", err)
			return
		}
		if err := renderToFile(r, s, logger); err != nil {
			logger.Error("render failed", "err", err)
		}
	})
}

// applyFlags overrides the scene settings with the flags given on the
// command line.
func applyFlags(s *config.Scene) error {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["mode"] {
		m, err := render.ParseRenderMode(*modeName)
		if err != nil {
			return err
		}
		s.Render.Mode = m
	}
	if set["shadows"] || *depthPath != "" {
		s.Render.Shadows = *shadows || *depthPath != ""
	}
	if set["textures"] {
		s.Render.Textures = *textures
	}
	return nil
}

func renderToFile(r *render.Renderer, s *config.Scene, logger *log.Logger) error {
	if err := r.Render(s.World, s.Lighting, s.Camera, s.Render, s.Projection); err != nil {
		return err
	}
	if err := r.Front().SavePNG(*outPath); err != nil {
		return err
	}
	st := r.Stats()
	logger.Info("rendered", "path", *outPath, "triangles", st.Triangles, "pixels", st.Pixels)

	if *depthPath == "" {
		return nil
	}
	for _, c := range s.Lighting.Casters() {
		if m := c.ShadowMap(); m != nil {
			return m.SavePNG(*depthPath)
		}
	}
	logger.Warn("no shadow map to write", "path", *depthPath)
	return nil
}

func isSceneFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// loadScene reads a scene file, imports a model or builds the demo scene.
func loadScene(path string, logger *log.Logger) (*config.Scene, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		return demoScene()
	case isSceneFile(path):
		return config.LoadScene(path, logger)
	case ext == ".glb" || ext == ".gltf":
		loader := scene.NewGLTFLoader()
		loader.Logger = logger
		model, err := loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		return modelScene(model)
	default:
		return nil, fmt.Errorf("unsupported file: %s (use .toml, .yaml or .glb)", path)
	}
}

// modelScene frames an imported model. glTF is Y-up, the scene is Z-up.
func modelScene(model *scene.Element) (*config.Scene, error) {
	model.SetTransformation(math3d.RotateX(math.Pi / 2))
	w := scene.NewWorld()
	w.Background = scene.RGB8(30, 30, 40)
	w.AddElement(model)

	bounds := w.Bounds()
	if bounds.IsEmpty() {
		return nil, errors.New("model has no geometry")
	}
	center := bounds.Center()
	eye := center.Add(math3d.V3(1, 0.8, 0.6).Normalize().Scale(3 * math.Max(bounds.Radius(), 0.1)))
	cam, err := render.NewCamera(eye, center, math3d.UnitZ())
	if err != nil {
		return nil, err
	}
	return &config.Scene{
		World:      w,
		Lighting:   defaultLighting(),
		Camera:     cam,
		Render:     render.DefaultRenderConfig(),
		Projection: render.DefaultProjection(),
	}, nil
}

func defaultLighting() *render.Lighting {
	sun := render.NewDirectionalLight(math3d.V3(-0.5, -1, -0.3), scene.White, 0.8)
	sun.CastsShadows = true
	return render.NewLighting(render.NewAmbientLight(scene.White, 0.2), sun)
}
