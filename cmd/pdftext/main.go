package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/pdftext"
	"github.com/joseph-ayodele/resume-extractor/internal/pipeline"
	"github.com/joseph-ayodele/resume-extractor/internal/services/extraction"
)

type report struct {
	Path     string      `json:"path"`
	Method   string      `json:"method"`
	Pages    int         `json:"pages"`
	Chars    int         `json:"chars"`
	Warnings []string    `json:"warnings,omitempty"`
	Fields   interface{} `json:"fields"`
	Filename interface{} `json:"filename"`
	Record   interface{} `json:"record"`
	Text     string      `json:"text,omitempty"`
}

func main() {
	var (
		configPath = flag.StringP("config", "c", "", "YAML config file (default $"+common.ConfigPathEnv+")")
		backends   = flag.StringSlice("backends", nil, "PDF text backends in order (gopdf, pdftotext, docconv)")
		pages      = flag.Int("pages", 0, "maximum pages to read")
		showText   = flag.BoolP("text", "t", false, "include the extracted text")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: pdftext [flags] <file.pdf>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if flag.CommandLine.Changed("backends") {
		cfg.Extract.Backends = *backends
	}
	if flag.CommandLine.Changed("pages") {
		cfg.Extract.MaxPages = *pages
	}
	// stdout carries the report
	cfg.Log.Format = "text"
	logger := common.NewLoggerTo(os.Stderr, cfg.Log)

	x, err := pdftext.NewExtractor(pdftext.Config{
		Backends:  cfg.Extract.Backends,
		Pdftotext: cfg.Extract.Pdftotext,
		MaxPages:  cfg.Extract.MaxPages,
		Timeout:   cfg.Extract.Timeout,
	}, logger)
	if err != nil {
		logger.Error("invalid extractor config", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := x.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "warnings", res.Warnings, "error", err)
		os.Exit(1)
	}

	fe := extraction.NewFieldExtractor(cfg.Fields)
	name := filepath.Base(path)
	fromText := fe.ExtractAll(res.Text)
	fromName := fe.ParseFilename(name)

	r := report{
		Path:     path,
		Method:   res.Method,
		Pages:    res.Pages,
		Chars:    len([]rune(res.Text)),
		Warnings: res.Warnings,
		Fields:   fromText,
		Filename: fromName,
		Record:   pipeline.Assemble(name, fromText, fromName),
	}
	if *showText {
		r.Text = res.Text
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		logger.Error("write report", "error", err)
		os.Exit(1)
	}
}
