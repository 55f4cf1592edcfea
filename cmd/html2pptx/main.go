package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/amplifier-stories/deck-tools/internal/convert"
	"github.com/amplifier-stories/deck-tools/internal/deck"
)

func main() {
	app := &cli.App{
		Name:      "html2pptx",
		Usage:     "convert a styled HTML deck to a PowerPoint file",
		ArgsUsage: "input.html [output.pptx]",
		Action:    entrypoint,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln("uncaught error: ", err)
	}
}

func entrypoint(cctx *cli.Context) (err error) {
	input := cctx.Args().First()
	if input == "" {
		return cli.ShowAppHelp(cctx)
	}

	output := cctx.Args().Get(1)
	if output == "" {
		output = strings.TrimSuffix(input, ".html") + ".pptx"
	}

	var f *os.File
	if f, err = os.Open(input); err != nil {
		err = fmt.Errorf("failed to open input: %w", err)
		return
	}
	defer f.Close()

	var doc *deck.Document
	if doc, err = deck.Parse(f); err != nil {
		err = fmt.Errorf("failed to parse %s: %w", input, err)
		return
	}

	log.Printf("converting %s", input)
	conv := convert.New(doc)
	prs, err := conv.Convert()
	if err != nil {
		err = fmt.Errorf("failed to convert deck: %w", err)
		return
	}

	if err = prs.SaveFile(output); err != nil {
		err = fmt.Errorf("failed to write %s: %w", output, err)
		return
	}

	for _, warning := range conv.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}
	log.Printf("wrote %s (%d slides)", output, len(prs.Slides))

	return
}
