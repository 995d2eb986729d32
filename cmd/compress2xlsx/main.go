package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin"
	"go.uber.org/zap"
	"kastelo.dev/compressxml"
	"kastelo.dev/compressxml/excel"
	"kastelo.dev/compressxml/internal/config"
	"kastelo.dev/compressxml/internal/logging"
	"kastelo.dev/compressxml/internal/server"
)

var (
	debug = kingpin.Flag("debug", "Enable debug logging").Bool()

	cmdConvert    = kingpin.Command("convert", "Convert a report to an Excel workbook")
	convertInput  = cmdConvert.Arg("file", "Report XML file (default stdin)").ExistingFile()
	convertOutput = cmdConvert.Flag("output", "Output workbook").Short('o').Default("compress_result.xlsx").String()

	cmdPreview   = kingpin.Command("preview", "Show the flattened document")
	previewInput = cmdPreview.Arg("file", "Report XML file (default stdin)").ExistingFile()
	previewLimit = cmdPreview.Flag("limit", "Rows to show, 0 for all").Default("100").Int()

	cmdCSV   = kingpin.Command("csv", "Write each sheet as a CSV file")
	csvInput = cmdCSV.Arg("file", "Report XML file (default stdin)").ExistingFile()
	csvDir   = cmdCSV.Flag("dir", "Output directory").Default(".").ExistingDir()

	cmdDiff = kingpin.Command("diff", "Show the differences between the sheets of two reports")
	diffOld = cmdDiff.Arg("old", "Old report XML file").Required().ExistingFile()
	diffNew = cmdDiff.Arg("new", "New report XML file").Required().ExistingFile()

	cmdServe    = kingpin.Command("serve", "Run the upload and download web interface")
	serveConfig = cmdServe.Flag("config", "Config file").ExistingFile()
)

func main() {
	cmd := kingpin.Parse()

	logger, err := logging.NewLogger(*debug)
	if err != nil {
		kingpin.Fatalf("creating logger: %v", err)
	}
	defer logger.Sync()

	switch cmd {
	case cmdConvert.FullCommand():
		root := mustParse(logger, *convertInput)
		bs, err := excel.WorkbookXLSX(compressxml.Convert(root))
		if err != nil {
			logger.Fatal("Error creating Excel file", zap.Error(err))
		}
		if err := os.WriteFile(*convertOutput, bs, 0o644); err != nil {
			logger.Fatal("Error writing Excel file", zap.Error(err))
		}
		logger.Debug("wrote workbook", zap.String("path", *convertOutput), zap.Int("bytes", len(bs)))

	case cmdPreview.FullCommand():
		root := mustParse(logger, *previewInput)
		if err := writePreview(os.Stdout, compressxml.Preview(root, *previewLimit)); err != nil {
			logger.Fatal("Error writing preview", zap.Error(err))
		}

	case cmdCSV.FullCommand():
		root := mustParse(logger, *csvInput)
		if err := writeCSV(*csvDir, compressxml.Convert(root)); err != nil {
			logger.Fatal("Error writing CSV files", zap.Error(err))
		}

	case cmdDiff.FullCommand():
		old := mustParse(logger, *diffOld)
		new := mustParse(logger, *diffNew)
		io.WriteString(os.Stdout, diffSheets(*diffNew, compressxml.Convert(old), compressxml.Convert(new)))

	case cmdServe.FullCommand():
		serve(logger)
	}
}

func mustParse(logger *zap.Logger, path string) *compressxml.Node {
	var r io.Reader = os.Stdin
	if path != "" {
		fd, err := os.Open(path)
		if err != nil {
			logger.Fatal("Error opening report", zap.Error(err))
		}
		defer fd.Close()
		r = fd
	}

	root, err := compressxml.Parse(r)
	if err != nil {
		logger.Fatal("Error parsing report", zap.String("path", path), zap.Error(err))
	}
	return root
}

func serve(logger *zap.Logger) {
	cfg := config.Default()
	if *serveConfig != "" {
		var err error
		cfg, err = config.Load(*serveConfig)
		if err != nil {
			logger.Fatal("Failed to load config", zap.Error(err))
		}
	}
	if cfg.Debug && !*debug {
		if l, err := logging.NewLogger(true); err == nil {
			logger = l
		}
	}

	srv := server.NewServer(cfg, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}
