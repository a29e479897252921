package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	PassNumber int // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// Raytracer renders a scene in parallel tiles, optionally over several progressive passes
type Raytracer struct {
	scene         *scene.Scene
	width, height int
	config        Config
	maxSamples    int
	tiles         []*Tile
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewRaytracer creates a raytracer for the scene. The scene's BVH is built if missing.
func NewRaytracer(sc *scene.Scene, integratorInst integrator.Integrator, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if sc.Camera == nil {
		return nil, fmt.Errorf("scene has no camera")
	}
	if sc.SamplingConfig.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("samples per pixel must be positive, got %d", sc.SamplingConfig.SamplesPerPixel)
	}
	if logger == nil {
		logger = nopLogger{}
	}
	if sc.BVH == nil {
		sc.Preprocess()
	}

	width, height := sc.Camera.Width(), sc.Camera.Height()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %dx%d", width, height)
	}

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, config.TileSize, config.Seed)
	tileRenderer := NewTileRenderer(sc, integratorInst)

	return &Raytracer{
		scene:      sc,
		width:      width,
		height:     height,
		config:     config,
		maxSamples: sc.SamplingConfig.SamplesPerPixel,
		tiles:      tiles,
		pixelStats: pixelStats,
		workerPool: NewWorkerPool(tileRenderer, config.NumWorkers, len(tiles)),
		logger:     logger,
	}, nil
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int {
	return rt.width
}

// Height returns the image height in pixels
func (rt *Raytracer) Height() int {
	return rt.height
}

// Close stops the worker pool
func (rt *Raytracer) Close() {
	rt.workerPool.Stop()
}

// RenderPass renders a single pass over all tiles and returns the accumulated image
func (rt *Raytracer) RenderPass(ctx context.Context, passNumber int, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	targetSamples := rt.config.samplesForPass(passNumber, rt.maxSamples)

	rt.logger.Debugf("Pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, rt.workerPool.GetNumWorkers())

	rt.workerPool.Start()

	for taskID, tile := range rt.tiles {
		rt.workerPool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        taskID,
			PixelStats:    rt.pixelStats,
			Ctx:           ctx,
		})
	}

	// Drain every result even after a failure so the next pass starts clean
	tilesX := (rt.width + rt.config.TileSize - 1) / rt.config.TileSize
	var firstErr error
	for i := 0; i < len(rt.tiles); i++ {
		result, ok := rt.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		tile := rt.tiles[result.TaskID]
		tile.PassesCompleted++

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:       tile.ID % tilesX,
				TileY:       tile.ID / tilesX,
				PassNumber:  passNumber,
				TileNumber:  i + 1,
				TotalTiles:  len(rt.tiles),
				TotalPasses: rt.config.MaxPasses,
			})
		}
	}
	if firstErr != nil {
		return nil, RenderStats{}, firstErr
	}

	img, stats := rt.assembleCurrentImage(targetSamples)
	stats.Passes = passNumber
	return img, stats, nil
}

// RenderProgressive renders all passes in the background and reports through channels.
// If options.TileUpdates is false, the tile channel is closed immediately.
// The worker pool is stopped when rendering ends.
func (rt *Raytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer rt.Close()

		rt.logger.Infof("Rendering %dx%d in %d tiles with %d workers, %d samples per pixel over %d passes",
			rt.width, rt.height, len(rt.tiles), rt.workerPool.GetNumWorkers(), rt.maxSamples, rt.config.MaxPasses)

		for pass := 1; pass <= rt.config.MaxPasses; pass++ {
			if err := ctx.Err(); err != nil {
				rt.logger.Infof("Rendering cancelled before pass %d", pass)
				errChan <- err
				return
			}

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					}
				}
			}

			startTime := time.Now()
			img, stats, err := rt.RenderPass(ctx, pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}
			stats.Duration = time.Since(startTime)

			rt.logger.Infof("Pass %d completed in %v (%.0f samples/pixel)", pass, stats.Duration, stats.AverageSamples)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == rt.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}

// Render runs every pass and returns the final image with its statistics
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	passChan, _, errChan := rt.RenderProgressive(ctx, RenderOptions{})

	var last PassResult
	for result := range passChan {
		last = result
	}
	if err := <-errChan; err != nil {
		return nil, RenderStats{}, err
	}
	if last.Image == nil {
		return nil, RenderStats{}, fmt.Errorf("render produced no passes")
	}

	last.Stats.Duration = time.Since(start)
	return last.Image, last.Stats, nil
}

// assembleCurrentImage creates an image from the shared pixel stats and
// calculates render statistics in a single sweep
func (rt *Raytracer) assembleCurrentImage(targetSamples int) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
		Tiles:       len(rt.tiles),
		Workers:     rt.workerPool.GetNumWorkers(),
	}

	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			pixel := &rt.pixelStats[y][x]
			img.SetRGBA(x, y, ToRGBA(pixel.GetColor()))

			stats.TotalSamples += pixel.SampleCount
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return img, stats
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
