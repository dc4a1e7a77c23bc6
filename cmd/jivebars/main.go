package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/kpango/glg"
	"github.com/linuxmatters/jivebars/internal/audio"
	"github.com/linuxmatters/jivebars/internal/cli"
	"github.com/linuxmatters/jivebars/internal/config"
	"github.com/linuxmatters/jivebars/internal/generator"
	"github.com/linuxmatters/jivebars/internal/renderer"
	"github.com/linuxmatters/jivebars/internal/scene"
	"github.com/linuxmatters/jivebars/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Audio  string `arg:"" name:"audio" help:"Audio file (WAV, MP3 or FLAC) driving the bars" optional:""`
	Config string `short:"c" help:"YAML settings file; updated with the sanitised color pattern"`
	Output string `short:"o" help:"Output path without extension" default:"jivebars"`

	Name          *string `help:"Object name prefix" group:"settings"`
	Bars          *int    `short:"n" help:"Number of bars" group:"settings"`
	Shape         *string `help:"Bar shape: RECTANGLE, TRIANGLE, CUBOID or PYRAMID" group:"settings"`
	ColorStyle    *string `help:"SINGLE_COLOR, PATTERN or GRADIENT" group:"settings"`
	Pattern       *string `short:"p" help:"Color pattern of palette digits 1-9" group:"settings"`
	Interpolation *string `help:"Gradient interpolation: RGB, HSV or HSL" group:"settings"`
	Radial        *bool   `help:"Arrange bars on an arc" group:"settings"`
	Symmetry      *bool   `help:"Generate half the bars for mirroring" group:"settings"`
	Preview       *bool   `help:"Static preview without audio baking" group:"settings"`

	NoJSON     bool   `name:"no-json" help:"Skip the JSON scene document" group:"outputs"`
	NoOBJ      bool   `name:"no-obj" help:"Skip the Wavefront OBJ and MTL files" group:"outputs"`
	NoPNG      bool   `name:"no-png" help:"Skip the PNG preview image" group:"outputs"`
	Background string `help:"Background image for the PNG preview" type:"existingfile" group:"outputs"`

	NoTUI     bool `name:"no-tui" help:"Print plain progress lines instead of the interactive UI"`
	NoPreview bool `help:"Disable the terminal preview in the summary"`
	Verbose   bool `short:"v" help:"Log debug output" env:"JIVEBARS_VERBOSE"`
	Version   bool `help:"Show version information"`
}

func main() {
	// .env values must be in the environment before flags are parsed.
	envConfig := config.LoadEnv()

	kong.Parse(&CLI,
		kong.Name("jivebars"),
		kong.Description(cli.AppDescription),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.ExplicitGroups([]kong.Group{
			{Key: "settings", Title: "Settings"},
			{Key: "outputs", Title: "Outputs"},
		}),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if CLI.Verbose {
		glg.Get().SetLevelMode(glg.DEBG, glg.STD)
	} else {
		glg.Get().SetLevelMode(glg.DEBG, glg.NONE)
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = envConfig
	}

	settings, err := loadSettings(configPath)
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	if settings.AudioFile != "" && !settings.PreviewMode {
		if _, err := os.Stat(settings.AudioFile); os.IsNotExist(err) {
			cli.PrintError(fmt.Sprintf("audio file does not exist: %s", settings.AudioFile))
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, genErr := generate(ctx, settings)

	// The sanitised pattern is written back even when generation failed.
	if configPath != "" {
		if err := settings.Save(configPath); err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		if CLI.NoTUI {
			cli.PrintSuccess(fmt.Sprintf("Saved settings to %s", configPath))
		}
	}

	if genErr != nil {
		cli.PrintError(genErr.Error())
		os.Exit(1)
	}

	if CLI.NoTUI {
		cli.PrintGenerationSummary(
			fmt.Sprintf("%d", summary.Bars),
			cli.FormatDuration(summary.Elapsed),
			summary.Outputs,
		)
	}
}

// loadSettings reads the settings file, if any, and applies command-line
// overrides.
func loadSettings(path string) (*config.Settings, error) {
	settings := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		switch {
		case err == nil:
			settings = loaded
		case errors.Is(err, os.ErrNotExist):
			cli.PrintWarning(fmt.Sprintf("settings file %s not found, it will be created", path))
		default:
			return nil, err
		}
	}

	overrides := config.Overrides{
		CustomName:    CLI.Name,
		BarCount:      CLI.Bars,
		BarShape:      CLI.Shape,
		ColorStyle:    CLI.ColorStyle,
		ColorPattern:  CLI.Pattern,
		Interpolation: CLI.Interpolation,
		UseRadial:     CLI.Radial,
		UseSymmetry:   CLI.Symmetry,
		PreviewMode:   CLI.Preview,
	}
	if CLI.Audio != "" {
		overrides.AudioFile = &CLI.Audio
	}
	overrides.Apply(settings)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

// generate builds the visualiser and writes the requested outputs, behind
// the interactive UI unless --no-tui is set.
func generate(ctx context.Context, settings *config.Settings) (*ui.Summary, error) {
	title := ""
	if settings.AudioFile != "" {
		title = audio.ReadMetadata(settings.AudioFile).Label()
	}

	task := func(ctx context.Context, r scene.Reporter) (*ui.Summary, error) {
		return build(ctx, settings, title, r)
	}

	if CLI.NoTUI {
		cli.PrintBanner()
		printSettings(settings, title)
		return task(ctx, ui.NewPlainReporter(os.Stdout))
	}

	model := ui.NewModel(title, CLI.NoPreview)
	summary, err := ui.Run(ctx, model, task)
	if summary != nil {
		fmt.Print(model.CompletionSummary())
	}
	return summary, err
}

func printSettings(settings *config.Settings, title string) {
	cli.PrintSection("Settings")
	if title != "" {
		cli.PrintInfo("Audio", title)
	}
	cli.PrintInfo("Bars", fmt.Sprintf("%d %s", settings.BarCount, settings.BarShape))
	cli.PrintInfo("Colors", settings.ColorStyle)
	if settings.UseRadial {
		cli.PrintInfo("Layout", fmt.Sprintf("radial, %g° arc", settings.ArcAngle))
	} else {
		cli.PrintInfo("Layout", "linear")
	}
	if settings.PreviewMode {
		cli.PrintInfo("Mode", "preview")
	}
	fmt.Println()
}

func build(ctx context.Context, settings *config.Settings, title string, r scene.Reporter) (*ui.Summary, error) {
	start := time.Now()

	sc := scene.New(audio.NewBaker(settings.FPS, settings.FFTSize))
	result, err := generator.New(sc, r).Run(ctx, settings)
	if err != nil {
		return nil, err
	}

	summary := &ui.Summary{
		Title:   title,
		Bars:    len(result.Bars),
		Removed: result.Removed,
		Pattern: settings.ColorPattern,
		Preview: settings.PreviewMode,
	}
	for _, bar := range result.Bars {
		summary.Colors = append(summary.Colors, bar.Color)
		height := settings.Amplitude
		if obj, ok := sc.Object(bar.Name); ok {
			height = obj.Scale[1]
			if obj.Action != nil {
				height = obj.Action.Curve(scene.AxisY).Peak()
			}
		}
		summary.Heights = append(summary.Heights, height)
	}

	if err := os.MkdirAll(filepath.Dir(CLI.Output), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if !CLI.NoJSON {
		path := CLI.Output + ".json"
		if err := writeFile(path, sc.WriteJSON); err != nil {
			return nil, err
		}
		summary.Outputs = append(summary.Outputs, path)
	}

	if !CLI.NoOBJ {
		objPath, mtlPath := CLI.Output+".obj", CLI.Output+".mtl"
		if err := writeOBJ(sc, objPath, mtlPath); err != nil {
			return nil, err
		}
		summary.Outputs = append(summary.Outputs, objPath, mtlPath)
	}

	if !CLI.NoPNG {
		path := CLI.Output + ".png"
		img, err := renderPreview(sc, settings, title, path)
		if err != nil {
			return nil, err
		}
		summary.Image = img
		summary.Outputs = append(summary.Outputs, path)
	}

	for i, path := range summary.Outputs {
		if info, err := os.Stat(path); err == nil {
			summary.Outputs[i] = fmt.Sprintf("%s (%s)", path, cli.FormatBytes(info.Size()))
		}
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func renderPreview(sc *scene.Scene, settings *config.Settings, title, path string) (image.Image, error) {
	opts := renderer.DefaultOptions()
	opts.Title = title
	opts.BackgroundImage = CLI.Background
	opts.Mirror = settings.UseSymmetry

	img, err := renderer.RenderFile(path, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return img, nil
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	glg.Debugf("wrote %s", path)
	return f.Close()
}

func writeOBJ(sc *scene.Scene, objPath, mtlPath string) error {
	objFile, err := os.Create(objPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", objPath, err)
	}
	defer objFile.Close()

	mtlFile, err := os.Create(mtlPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", mtlPath, err)
	}
	defer mtlFile.Close()

	if err := sc.WriteOBJ(objFile, mtlFile, filepath.Base(mtlPath)); err != nil {
		return fmt.Errorf("writing %s: %w", objPath, err)
	}
	if err := objFile.Close(); err != nil {
		return err
	}
	return mtlFile.Close()
}
