package hedgerow

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game runs a component tree as an ebiten.Game. Each Draw renders one frame
// onto the screen through an EbitenSurface; Layout keeps the renderer's scale
// factor fitted to the window.
//
// A frame whose evaluation fails is dropped and logged; the next frame starts
// fresh. The most recent error is available from Err.
type Game[P any] struct {
	renderer *Renderer[P]
	surface  *EbitenSurface
	props    func() P
	cfg      RunConfig

	script      *FrameScript
	screenshots screenshotQueue
	lastErr     error
}

// NewGame creates a Game for root. props is called once per frame for the
// root props; nil renders the root with the zero P.
func NewGame[P any](root Component[P], props func() P, cfg RunConfig, opts ...RendererOption) (*Game[P], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	surface, err := NewEbitenSurface()
	if err != nil {
		return nil, err
	}
	g := &Game[P]{
		renderer:    NewRenderer(root, surface, opts...),
		surface:     surface,
		props:       props,
		cfg:         cfg,
		screenshots: screenshotQueue{dir: cfg.ScreenshotDir},
	}
	if cfg.Script != "" {
		script, err := LoadFrameScriptFile(cfg.Script)
		if err != nil {
			return nil, err
		}
		g.script = script
	}
	return g, nil
}

// Renderer returns the renderer driving the game.
func (g *Game[P]) Renderer() *Renderer[P] {
	return g.renderer
}

// SetScript attaches a frame script, replacing any previous one.
func (g *Game[P]) SetScript(s *FrameScript) {
	g.script = s
}

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw. The PNG is written to RunConfig.ScreenshotDir with a
// timestamped filename.
func (g *Game[P]) Screenshot(label string) {
	g.screenshots.push(label)
}

// Err returns the error of the most recent frame, or nil.
func (g *Game[P]) Err() error {
	return g.lastErr
}

// Update advances the frame script and calls RunConfig.OnUpdate. Rendering
// happens in Draw.
func (g *Game[P]) Update() error {
	if g.script != nil {
		g.script.step(g)
		if g.script.QuitRequested() {
			return ebiten.Termination
		}
	}
	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

// Draw renders one frame onto screen.
func (g *Game[P]) Draw(screen *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		screen.Fill(g.cfg.Background)
	}
	g.surface.BeginFrame(screen)

	var props P
	if g.props != nil {
		props = g.props()
	}
	g.lastErr = g.renderer.RenderFrame(props)

	if g.cfg.ShowFPS {
		st := g.renderer.Stats()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nitems: %d hidden: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), st.Items, st.Hidden))
	}
	g.screenshots.flush(screen)
}

// Layout uses the outside size as the screen size and fits the logical space
// into it.
func (g *Game[P]) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.SetScaleFactor(g.cfg.ScaleFor(outsideWidth, outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and runs root until the window is closed or a frame
// script quits. props supplies the root props for every frame.
func Run[P any](root Component[P], props func() P, cfg RunConfig, opts ...RendererOption) error {
	g, err := NewGame(root, props, cfg, opts...)
	if err != nil {
		return err
	}
	defer g.surface.Dispose()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

var _ ebiten.Game = (*Game[struct{}])(nil)
