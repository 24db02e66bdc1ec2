package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/cvtool/yolo-tiler/pkg/cleanup"
)

func main() {
	var in, backup string
	var doDelete, doMove, keepOriginal bool

	flag.StringVar(&in, "in", "", "dataset root directory (must contain images/ and labels/)")
	flag.StringVar(&backup, "backup", "", "move files into this directory instead of deleting")
	flag.BoolVar(&doDelete, "delete", false, "actually delete files (default is a dry-run preview)")
	flag.BoolVar(&doMove, "move", false, "actually move files to the backup directory")
	flag.BoolVar(&keepOriginal, "keep-original", false, "remove the derived tiles and keep the originals")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in dataset_root [-backup dir] [-delete|-move] [-keep-original]", filepath.Base(os.Args[0]))
	}
	if doDelete && backup != "" {
		log.Fatalf("-delete and -backup cannot be combined; use -move with -backup")
	}
	if doMove && backup == "" {
		log.Fatalf("-move requires -backup")
	}

	dryRun := !(doDelete || doMove)
	cleaner := cleanup.New(in, backup, dryRun, keepOriginal)

	if err := cleaner.Run(); err != nil {
		log.Fatal(err)
	}
}
