package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/cvtool/yolo-tiler/internal/config"
	"github.com/cvtool/yolo-tiler/pkg/splitter"
	"github.com/cvtool/yolo-tiler/pkg/yolo"
)

func main() {
	var in, out, export, configPath string
	var overlap float64
	var noKeepOriginal, overwrite, generateCenter, requireFullBBox bool
	var quality int
	var debug, stats bool

	flag.StringVar(&in, "in", "", "dataset root directory (must contain images/ and labels/)")
	flag.StringVar(&out, "out", "", "output directory (default: split in place)")
	flag.StringVar(&export, "export", "", "also copy generated tiles into this directory")
	flag.StringVar(&configPath, "config", "", "JSON config file (flags override file values)")

	flag.Float64Var(&overlap, "overlap", 0.1, "overlap band as a fraction of each image dimension (0-0.5)")
	flag.BoolVar(&generateCenter, "generate-center", false, "also generate a center tile")
	flag.BoolVar(&requireFullBBox, "require-full-bbox", false, "only keep tiles that fully contain at least one box")
	flag.BoolVar(&noKeepOriginal, "no-keep-original", false, "do not keep the original images and labels")
	flag.BoolVar(&overwrite, "overwrite", false, "overwrite an existing output/export directory")

	flag.IntVar(&quality, "quality", 95, "JPEG/WebP quality for tile images (1-100)")
	flag.BoolVar(&debug, "debug", false, "write box overlay PNGs into <out>/debug")
	flag.BoolVar(&stats, "stats", false, "print annotation statistics for the produced labels")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in dataset_root [-out outdir] [-overlap 0.1] [-generate-center] [-require-full-bbox]", filepath.Base(os.Args[0]))
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	// Flags override config file values.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "overlap":
			cfg.Split.OverlapRatio = overlap
		case "generate-center":
			cfg.Split.GenerateCenter = generateCenter
		case "require-full-bbox":
			cfg.Split.RequireFullBBox = requireFullBBox
		case "no-keep-original":
			cfg.Split.KeepOriginal = !noKeepOriginal
		case "quality":
			cfg.Output.Quality = quality
		case "debug":
			cfg.Output.DebugOverlay = debug
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	proc := splitter.New(in, out, export, overwrite, splitter.Options{
		OverlapRatio:    cfg.Split.OverlapRatio,
		GenerateCenter:  cfg.Split.GenerateCenter,
		RequireFullBBox: cfg.Split.RequireFullBBox,
		KeepOriginal:    cfg.Split.KeepOriginal,
		Quality:         cfg.Output.Quality,
		Debug:           cfg.Output.DebugOverlay,
	})

	if err := proc.Run(); err != nil {
		log.Fatal(err)
	}

	if stats {
		labelsDir := filepath.Join(in, "labels")
		if out != "" {
			labelsDir = filepath.Join(out, "labels")
		}
		s, err := yolo.CollectDir(labelsDir)
		if err != nil {
			log.Fatalf("stats failed: %v", err)
		}
		log.Printf("annotation statistics:\n%s", s)
	}
}
