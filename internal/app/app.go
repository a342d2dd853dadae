package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/walkabout/internal/assets"
	"github.com/Faultbox/walkabout/internal/config"
	"github.com/Faultbox/walkabout/internal/engine/input"
	"github.com/Faultbox/walkabout/internal/engine/renderer"
	"github.com/Faultbox/walkabout/internal/engine/scene"
	"github.com/Faultbox/walkabout/internal/engine/texture"
	"github.com/Faultbox/walkabout/internal/engine/window"
	"github.com/Faultbox/walkabout/internal/logger"
)

// App owns the window, renderer, and application state.
type App struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	composer *scene.Composer

	state        State
	uploadedMesh int

	loader  *assets.Loader
	results chan assets.Result
}

// New creates the app: window plus GL context first, then the renderer, then
// the fire-and-forget asset fetches.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:  cfg,
		state:   NewState(),
		loader:  assets.NewLoader(),
		results: make(chan assets.Result, 2),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Walkabout",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a.input = input.New()
	a.composer = scene.NewComposer(cfg.Graphics.Width, cfg.Graphics.Height)

	// Kick off asset loads. Completions arrive on a.results and are merged
	// into the loop like any other event; failures leave the placeholder
	// state in place.
	if cfg.Assets.Mesh != "" {
		a.loader.LoadAsync(assets.KindMesh, cfg.Assets.Mesh, a.results)
	}
	if cfg.Assets.Texture != "" {
		a.loader.LoadAsync(assets.KindTexture, cfg.Assets.Texture, a.results)
	}

	logger.Info("app initialized",
		zap.String("mesh", cfg.Assets.Mesh),
		zap.String("texture", cfg.Assets.Texture),
	)
	return a, nil
}

// Run starts the main loop. Everything that changes state goes through
// Reduce, one event at a time, on this goroutine.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds() * 1000) // milliseconds
		lastTime = now

		// 1. Input events
		if a.input.Update() {
			a.running = false
			break
		}
		for _, ev := range a.input.Events() {
			switch ev.Type {
			case input.EventQuit:
				a.running = false
			case input.EventWindowResize:
				a.renderer.Resize(ev.Width, ev.Height)
				a.composer.SetViewport(ev.Width, ev.Height)
			case input.EventKeyDown:
				a.apply(KeyEvent{Code: ev.Key, Pressed: true})
			case input.EventKeyUp:
				a.apply(KeyEvent{Code: ev.Key, Pressed: false})
			}
		}

		// 2. Asset completions, interleaved with the frame events
		a.drainAssetResults()

		// 3. Simulation tick
		a.apply(TickEvent{DT: dt})

		// 4. GPU side effects implied by the new state
		a.syncGPU()

		// 5. Render
		a.renderer.Begin()
		for _, req := range a.composer.Compose(a.state.Mesh, a.state.TextureID, a.state.TextureReady, a.state.Pose) {
			a.renderer.Draw(req)
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// apply runs one event through the reducer.
func (a *App) apply(ev Event) {
	a.state = Reduce(a.state, ev)
}

// drainAssetResults turns any completed loads into events without blocking.
func (a *App) drainAssetResults() {
	for {
		select {
		case res := <-a.results:
			a.apply(a.assetEvent(res))
		default:
			return
		}
	}
}

// assetEvent converts a load result into its reducer event. Load and decode
// failures become error events, which the reducer swallows.
func (a *App) assetEvent(res assets.Result) Event {
	if res.Err != nil {
		logger.Warn("asset load failed",
			zap.Stringer("kind", res.Kind),
			zap.Error(res.Err),
		)
	}

	switch res.Kind {
	case assets.KindTexture:
		if res.Err != nil {
			return TextureEvent{Err: res.Err}
		}
		img, err := texture.Decode(res.Data)
		if err != nil {
			logger.Warn("texture decode failed", zap.Error(err))
			return TextureEvent{Err: err}
		}
		return TextureEvent{Img: texture.ToRGBA(img)}

	default:
		return MeshEvent{Text: string(res.Data), Err: res.Err}
	}
}

// syncGPU uploads pending mesh or texture data. Runs on the loop goroutine,
// which owns the GL context.
func (a *App) syncGPU() {
	if a.state.MeshVersion != a.uploadedMesh {
		a.renderer.SetMesh(a.state.Mesh)
		a.uploadedMesh = a.state.MeshVersion
		logger.Info("mesh loaded", zap.Int("triangles", len(a.state.Mesh.Triangles)))
	}

	if a.state.TextureImage != nil && !a.state.TextureReady {
		id := texture.Upload(a.state.TextureImage)
		a.apply(TextureUploaded{ID: id})
		logger.Info("texture loaded", zap.Uint32("id", id))
	}
}

// Close cleans up resources.
func (a *App) Close() {
	logger.Info("closing app")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
