package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/amplifier-stories/deck-tools/internal/verify"
)

func main() {
	app := &cli.App{
		Name:      "pptx-verify",
		Usage:     "check generated decks for text overflow and shape overlap",
		ArgsUsage: "file.pptx | directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "also list clean slides",
			},
		},
		Action: entrypoint,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln("uncaught error: ", err)
	}
}

func entrypoint(cctx *cli.Context) (err error) {
	target := cctx.Args().First()
	if target == "" {
		return cli.ShowAppHelp(cctx)
	}

	var paths []string
	if paths, err = collectDecks(target); err != nil {
		return
	}
	if len(paths) == 0 {
		err = fmt.Errorf("no .pptx files found in %s", target)
		return
	}

	clean := 0
	for i, path := range paths {
		if i > 0 {
			fmt.Println()
		}

		var report *verify.DeckReport
		if report, err = verify.VerifyFile(path); err != nil {
			return
		}

		verify.WriteReport(os.Stdout, report, cctx.Bool("verbose"))
		if report.Clean() {
			clean++
		}
	}

	// Reporting tool: issues are printed, never turned into a failing
	// exit status.
	if len(paths) > 1 {
		fmt.Printf("\n%d of %d deck(s) clean\n", clean, len(paths))
	}
	return
}

func collectDecks(target string) (paths []string, err error) {
	var info os.FileInfo
	if info, err = os.Stat(target); err != nil {
		return
	}

	if !info.IsDir() {
		paths = []string{target}
		return
	}

	if paths, err = filepath.Glob(filepath.Join(target, "*.pptx")); err != nil {
		return
	}
	sort.Strings(paths)
	return
}
