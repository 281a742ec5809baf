package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/velt/spriteset/internal/config"
	"github.com/velt/spriteset/internal/ctxlog"
	"github.com/velt/spriteset/internal/loader"
	"github.com/velt/spriteset/internal/registry"
	"github.com/velt/spriteset/internal/sprite"
)

// App wires the engine configuration, the loader and the registry together
// and runs one of the two modes: inventory or resolve.
type App struct {
	out io.Writer
	err io.Writer
	cfg *Config
}

// NewApp creates an App writing results to out and logs to errW.
func NewApp(out, errW io.Writer, cfg *Config) *App {
	return &App{out: out, err: errW, cfg: cfg}
}

// Run loads the character set from the asset root and executes the selected
// mode.
func (a *App) Run(ctx context.Context) error {
	engineCfg, err := config.Load(ctx, a.cfg.ConfigPath)
	if err != nil {
		return err
	}

	level := engineCfg.LogLevel
	if a.cfg.LogLevel != "" {
		level = a.cfg.LogLevel
	}
	format := engineCfg.LogFormat
	if a.cfg.LogFormat != "" {
		format = a.cfg.LogFormat
	}
	logger := newLogger(level, format, a.err)
	ctx = ctxlog.WithLogger(ctx, logger)

	reg := registry.New(loader.New(engineCfg))
	if err := reg.LoadAll(ctx, a.cfg.AssetRoot); err != nil {
		return err
	}

	if a.cfg.Character == "" {
		return a.printInventory(reg)
	}
	return a.resolve(reg)
}

// printInventory lists every loaded character with its poses, outfits,
// expressions and toggleable accessories.
func (a *App) printInventory(reg *registry.Registry) error {
	for _, id := range reg.Characters() {
		body, _ := reg.Body(id)
		poses := make([]string, 0, len(body.Poses()))
		for _, p := range body.Poses() {
			poses = append(poses, p.Name)
		}
		fmt.Fprintf(a.out, "%s (%q, default outfit: %s, box: %dx%d)\n",
			id, body.DisplayName, body.DefaultOutfit, body.Width, body.Height)
		fmt.Fprintf(a.out, "  poses:       %s\n", strings.Join(poses, ", "))
		fmt.Fprintf(a.out, "  outfits:     %s\n", strings.Join(body.Outfits(), ", "))
		fmt.Fprintf(a.out, "  expressions: %s\n", strings.Join(body.Expressions(), ", "))
		if accs := body.Accessories(); len(accs) > 0 {
			fmt.Fprintf(a.out, "  accessories: %s\n", strings.Join(accs, ", "))
		}
	}
	return nil
}

// resolve composes the draw plan for the state selected on the command line
// and prints it in draw order.
func (a *App) resolve(reg *registry.Registry) error {
	body, ok := reg.Body(a.cfg.Character)
	if !ok {
		return fmt.Errorf("character %q is not loaded", a.cfg.Character)
	}

	state := sprite.State{
		Pose:        a.cfg.Pose,
		Expression:  a.cfg.Expression,
		Blush:       a.cfg.Blush,
		Outfit:      a.cfg.Outfit,
		Accessories: sprite.NewSet(a.cfg.Accessories...),
	}
	if state.Pose == "" {
		if poses := body.Poses(); len(poses) > 0 {
			state.Pose = poses[0].Name
		}
	}
	if state.Expression == "" {
		state.Expression = "0"
	}
	if state.Outfit == "" {
		state.Outfit = body.DefaultOutfit
	}

	plan, err := body.Resolve(state, a.cfg.Strict)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s pose=%s outfit=%s expression=%s blush=%v\n",
		a.cfg.Character, state.Pose, state.Outfit, state.Expression, state.Blush)
	fmt.Fprintf(a.out, "offset=(%d,%d) ycenter=%.4f\n", plan.OffsetX, plan.OffsetY, plan.YCenter)
	for i, image := range plan.Images {
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, image)
	}
	return nil
}
