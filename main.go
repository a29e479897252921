package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

var (
	logger         = log.New(log.ModuleCLI)
	sceneLogger    = log.New(log.ModuleScene)
	rendererLogger = log.New(log.ModuleRenderer)
)

func main() {
	app := cli.NewApp()
	app.Name = "go-weekend-raytracer"
	app.Usage = "render the built-in scenes with a recursive path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringSliceFlag{
			Name:  "log-module",
			Usage: "set one module's level as module=level, e.g. renderer=debug (modules: cli, scene, renderer)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PPM or PNG file",
			Description: `
Build the selected scene, trace it in parallel tiles and write the image.
Zero values for --spp, --depth and --width keep the scene's own defaults.
The output format follows the file extension (.ppm or .png).`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "scene id (see the scenes command) or obj:<name> for assets/<name>.obj",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounce depth",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "base seed for the per-tile random generators",
				},
				cli.Int64Flag{
					Name:  "scene-seed",
					Value: 42,
					Usage: "seed for randomly generated scene content",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of parallel workers (0 = logical CPU count)",
				},
				cli.IntFlag{
					Name:  "tile",
					Value: renderer.DefaultConfig().TileSize,
					Usage: "tile size in pixels",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: 1,
					Usage: "number of progressive passes",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file (default output/<scene>/render_<timestamp>.png)",
				},
				cli.StringFlag{
					Name:  "assets",
					Value: "assets",
					Usage: "directory holding textures and OBJ meshes",
				},
			},
			Action: renderAction,
		},
		{
			Name:  "scenes",
			Usage: "list available scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "assets",
					Value: "assets",
					Usage: "directory holding OBJ meshes",
				},
			},
			Action: listScenesAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	for _, setting := range ctx.GlobalStringSlice("log-module") {
		if err := applyModuleLevel(setting); err != nil {
			return err
		}
	}
	return nil
}

// applyModuleLevel parses a module=level setting and applies it
func applyModuleLevel(setting string) error {
	module, levelName, ok := strings.Cut(setting, "=")
	if !ok {
		return fmt.Errorf("invalid log module setting %q, expected module=level", setting)
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return err
	}
	return log.SetModuleLevel(module, level)
}

// renderSettings collects the render command's flags
type renderSettings struct {
	SceneID   string
	Samples   int
	Depth     int
	Width     int
	SceneSeed int64
	AssetDir  string
	Output    string
	Config    renderer.Config
}

func renderAction(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	logHostInfo()

	settings := renderSettings{
		SceneID:   ctx.String("scene"),
		Samples:   ctx.Int("spp"),
		Depth:     ctx.Int("depth"),
		Width:     ctx.Int("width"),
		SceneSeed: ctx.Int64("scene-seed"),
		AssetDir:  ctx.String("assets"),
		Output:    ctx.String("out"),
		Config: renderer.Config{
			TileSize:       ctx.Int("tile"),
			NumWorkers:     ctx.Int("workers"),
			Seed:           ctx.Int64("seed"),
			InitialSamples: 1,
			MaxPasses:      ctx.Int("passes"),
		},
	}
	if settings.Config.NumWorkers == 0 {
		settings.Config.NumWorkers = defaultWorkerCount()
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runRender(runCtx, settings, os.Stdout)
}

// runRender builds the scene, renders it and writes the image and a statistics table
func runRender(ctx context.Context, settings renderSettings, statsOut io.Writer) error {
	sc, err := createScene(settings)
	if err != nil {
		return err
	}

	logger.Noticef("rendering scene %q (%d primitives)", settings.SceneID, sc.GetPrimitiveCount())

	start := time.Now()
	sc.Preprocess()
	bvhTime := time.Since(start)
	logger.Infof("built BVH in %v", bvhTime)

	rt, err := renderer.NewRaytracer(sc, integrator.NewPathTracingIntegrator(sc.SamplingConfig), settings.Config, rendererLogger)
	if err != nil {
		return err
	}

	passChan, tileChan, errChan := rt.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})
	go func() {
		for tile := range tileChan {
			rendererLogger.Debugf("pass %d/%d: tile %d/%d done", tile.PassNumber, tile.TotalPasses, tile.TileNumber, tile.TotalTiles)
		}
	}()

	var final renderer.PassResult
	for result := range passChan {
		final = result
	}
	if err := <-errChan; err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	final.Stats.Duration = time.Since(start)

	filename := settings.Output
	if filename == "" {
		filename = defaultOutputPath(settings.SceneID, time.Now())
	}
	if err := renderer.SaveImage(filename, final.Image); err != nil {
		return err
	}
	logger.Noticef("wrote %dx%d image to %s", rt.Width(), rt.Height(), filename)

	displayRenderStats(statsOut, final.Stats, sc)
	return nil
}

// createScene builds the scene and applies the command line overrides
func createScene(settings renderSettings) (*scene.Scene, error) {
	opts := scene.Options{
		AssetDir: settings.AssetDir,
		Seed:     settings.SceneSeed,
		Logger:   sceneLogger,
	}

	sc, err := scene.NewSceneByID(settings.SceneID, opts, geometry.CameraConfig{Width: settings.Width})
	if err != nil {
		return nil, err
	}

	if settings.Samples > 0 {
		sc.SamplingConfig.SamplesPerPixel = settings.Samples
	}
	if settings.Depth > 0 {
		sc.SamplingConfig.MaxDepth = settings.Depth
	}
	return sc, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneID string, now time.Time) string {
	return filepath.Join("output", sanitizeSceneID(sceneID), fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// sanitizeSceneID turns "obj:name" into a directory-safe "obj-name"
func sanitizeSceneID(sceneID string) string {
	out := []rune(sceneID)
	for i, r := range out {
		if r == ':' || r == '/' || r == '\\' {
			out[i] = '-'
		}
	}
	if len(out) == 0 {
		return "scene"
	}
	return string(out)
}

// defaultWorkerCount returns the logical core count, falling back to the runtime's view
func defaultWorkerCount() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		logger.Debugf("cpu count unavailable (%v), using runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return count
}

func logHostInfo() {
	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		logger.Infof("cpu: %s (%.2f GHz)", info[0].ModelName, info[0].Mhz/1000)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Infof("memory: %d MiB total, %d MiB available", vm.Total>>20, vm.Available>>20)
	}
}

func displayRenderStats(w io.Writer, stats renderer.RenderStats, sc *scene.Scene) {
	bvhStats := sc.BVH.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.AppendBulk([][]string{
		{"Image", fmt.Sprintf("%dx%d", sc.Camera.Width(), sc.Camera.Height())},
		{"Primitives", fmt.Sprintf("%d", sc.GetPrimitiveCount())},
		{"BVH nodes", fmt.Sprintf("%d", bvhStats.TotalNodes)},
		{"BVH leaves", fmt.Sprintf("%d", bvhStats.LeafCount)},
		{"BVH depth (max / avg)", fmt.Sprintf("%d / %.1f", bvhStats.MaxDepth, bvhStats.AvgDepth)},
		{"Tiles", fmt.Sprintf("%d", stats.Tiles)},
		{"Workers", fmt.Sprintf("%d", stats.Workers)},
		{"Passes", fmt.Sprintf("%d", stats.Passes)},
		{"Samples", fmt.Sprintf("%d", stats.TotalSamples)},
		{"Samples per pixel", fmt.Sprintf("%.1f (range %d - %d)", stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)},
		{"Max depth", fmt.Sprintf("%d", sc.SamplingConfig.MaxDepth)},
	})
	table.SetFooter([]string{"Render time", stats.Duration.Round(time.Millisecond).String()})
	table.Render()

	fmt.Fprint(w, buf.String())
}

func listScenesAction(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	return listScenes(os.Stdout, ctx.String("assets"))
}

// listScenes prints every scene group as a table
func listScenes(w io.Writer, assetDir string) error {
	groups, err := scene.ListAllScenes(assetDir)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, group := range groups {
		for _, info := range group.Scenes {
			table.Append([]string{info.ID, info.DisplayName, group.Name, info.Description})
		}
	}
	table.Render()
	return nil
}
