// Package main provides the cognitus CLI for running text through the
// content processing pipeline.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Tpanarchist/cognitus/pkg/content"
)

func main() {
	var (
		formality = flag.String("formality", "", "formality transform: casual or formal")
		tone      = flag.String("tone", "", "tone transform: positive or negative")
		sanitize  = flag.Bool("sanitize", true, "run the sanitization steps")
		emoji     = flag.Bool("emoji", false, "run emoji processing")
		trail     = flag.Bool("trail", false, "print the modification trail")
		verbose   = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cognitus [flags] [text]")
		fmt.Fprintln(os.Stderr, "Reads from stdin when no text argument is given.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := logrus.New()
	logger.Out = os.Stderr
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	text, err := readInput(flag.Args())
	if err != nil {
		logger.WithError(err).Fatal("failed to read input")
	}

	cfg := content.DefaultConfig()
	cfg.Logger = logger
	pipeline, err := content.NewPipeline(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to build pipeline")
	}

	processed, err := pipeline.Process(text, content.ProcessOptions{
		Sanitize:     *sanitize,
		Formality:    content.Formality(*formality),
		Tone:         content.Tone(*tone),
		ProcessEmoji: *emoji,
	})
	if err != nil {
		logger.WithError(err).Fatal("processing failed")
	}

	fmt.Println(processed.Content)

	if *trail {
		for i, mod := range processed.Modifications {
			fmt.Fprintf(os.Stderr, "%d. %s: %q -> %q\n",
				i+1, mod.Type, mod.OriginalContent, mod.ModifiedContent)
		}
	}
}

func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
