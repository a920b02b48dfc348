// Command petrorun measures Petrosian radii for catalogued galaxies on
// a FITS science frame and writes the results CSV, profile plots, and
// run manifest.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"petrofind/internal/catalog"
	"petrofind/internal/config"
	"petrofind/internal/detect"
	"petrofind/internal/frame"
	"petrofind/internal/petro"
	"petrofind/internal/render"
	"petrofind/internal/report"
	"petrofind/internal/run"
	"petrofind/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	fitsPath := flag.String("fits", "", "Path to FITS science frame")
	hdu := flag.String("hdu", "", "Image extension name (default: first image HDU)")
	catalogPath := flag.String("catalog", "", "Path to target catalog CSV (id,x,y,z)")
	outDir := flag.String("out", "", "Output directory")
	plots := flag.Bool("plots", true, "Write surface brightness profile plots")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	log := newLogger(*verbose)
	log.Info().
		Str("version", version.Version).
		Str("commit", version.GitCommit).
		Msg("petrorun starting")

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *fitsPath != "" {
		cfg.Frame.Path = *fitsPath
	}
	if *hdu != "" {
		cfg.Frame.HDU = *hdu
	}
	if *catalogPath != "" {
		cfg.Catalog = *catalogPath
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	if cfg.Frame.Path == "" || cfg.Catalog == "" {
		fmt.Println("Usage: petrorun -fits <frame.fits> -catalog <targets.csv> [-config cfg.yaml] [-out dir]")
		os.Exit(1)
	}

	if err := execute(cfg, *plots, log); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func execute(cfg config.Config, plots bool, log zerolog.Logger) error {
	ctx, err := run.New(cfg.OutDir)
	if err != nil {
		return err
	}
	log.Info().Str("run_id", ctx.ID).Str("out_dir", ctx.OutDir).Msg("run context created")
	manifest := run.NewManifest(ctx, cfg.Frame.Path, cfg.Catalog)

	f, err := frame.LoadFITS(cfg.Frame.Path, cfg.Frame.HDU)
	if err != nil {
		return fmt.Errorf("failed to load frame: %w", err)
	}
	log.Info().
		Int("width", f.Width).
		Int("height", f.Height).
		Msg("frame loaded")

	sources, err := detect.Sources(f, cfg.Detect.Params())
	if err != nil {
		return fmt.Errorf("source detection failed: %w", err)
	}
	log.Info().Int("sources", len(sources)).Msg("sources detected")

	targets, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return err
	}
	records := catalog.Match(targets, sources, cfg.MatchTolerance)
	log.Info().
		Int("targets", len(targets)).
		Int("matched", len(records)).
		Msg("catalog matched")
	if len(records) == 0 {
		return fmt.Errorf("no catalog targets matched a detected source")
	}

	proc := petro.NewProcessor(cfg.Petro.Policy(), log)
	sum := proc.Process(f, records)

	manifest.Targets = sum.Total
	manifest.Determined = sum.Done
	manifest.FatalNoFit = sum.FatalNoFit
	manifest.FatalNoRadius = sum.FatalNoRadius

	rows := report.RowsFrom(records, cfg.Cosmology.Cosmology())
	resultsPath := ctx.ResultsPath()
	if err := report.WriteCSV(resultsPath, rows); err != nil {
		return err
	}
	manifest.ResultsPath = resultsPath
	log.Info().Str("path", resultsPath).Msg("results written")

	if plots {
		for _, rec := range records {
			if len(rec.Isophotes) == 0 {
				continue
			}
			path := ctx.PlotPath(rec.ID)
			if err := render.Profile(rec, path); err != nil {
				log.Warn().Err(err).Str("id", rec.ID).Msg("failed to render profile plot")
				continue
			}
			log.Debug().Str("path", path).Msg("profile plot written")
		}
	}

	if err := manifest.Save(ctx.ManifestPath()); err != nil {
		return fmt.Errorf("failed to save run manifest: %w", err)
	}

	return report.PrintSummary(os.Stdout, rows, sum)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
