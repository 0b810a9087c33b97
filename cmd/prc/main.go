package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	prc "github.com/blu-dev/prc-go"
	"github.com/blu-dev/prc-go/hash40"
	"github.com/blu-dev/prc-go/param"
	"github.com/blu-dev/prc-go/paramxml"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to the param (.prc) file")
		outFile     = flag.String("out", "", "Write markup to this file instead of stdout")
		labelFile   = flag.String("labels", "", "Label file for readable hashes (one label per line, or hex,label)")
		verbose     = flag.Bool("v", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive tree browser")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: prc -in <file.prc> [-out file.xml] [-labels ParamLabels.csv]")
		fmt.Fprintln(os.Stderr, "       prc -in <file.prc> -i  (interactive browser)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		param.SetLogger(logger)
	}

	labels, err := loadLabels(*labelFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, labels); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*inFile, *outFile, labels); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadLabels(path string) (hash40.Labels, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer f.Close()
	return hash40.LoadLabels(f)
}

func run(inFile, outFile string, labels hash40.Labels) error {
	root, err := prc.DecodeFile(inFile)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inFile, err)
	}

	if outFile != "" {
		return prc.WriteXMLFile(outFile, root, labels)
	}
	return paramxml.Write(os.Stdout, root, paramxml.WithLabels(labels))
}
