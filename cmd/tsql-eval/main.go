// Command tsql-eval evaluates predicted SQL queries against gold queries
// and writes a JSON report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kyungjunleeme/Text2SQL/internal/backend"
	"github.com/kyungjunleeme/Text2SQL/internal/config"
	"github.com/kyungjunleeme/Text2SQL/internal/eval"
	"github.com/kyungjunleeme/Text2SQL/internal/report"
	"github.com/kyungjunleeme/Text2SQL/internal/uploader"
	"github.com/kyungjunleeme/Text2SQL/internal/util"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	testcasesPath := flag.String("testcases", "", "JSON list of {id, question, gold_sql}")
	predictionsPath := flag.String("predictions", "", "JSON list of {id, pred_sql}")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if *testcasesPath == "" || *predictionsPath == "" {
		fmt.Fprintln(os.Stderr, "both -testcases and -predictions are required")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	cases, err := eval.LoadTestCases(*testcasesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load testcases: %v\n", err)
		os.Exit(1)
	}
	preds, err := eval.LoadPredictions(*predictionsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load predictions: %v\n", err)
		os.Exit(1)
	}

	exec, err := backend.Open(cfg.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open backend: %v\n", err)
		os.Exit(1)
	}
	defer util.CloseWithErr(exec, "backend")

	util.Infof("evaluating %d case(s) on %s backend", len(cases), cfg.Backend.Kind)
	ctx := context.Background()
	e := eval.New(exec, eval.Options{
		Dialect:           cfg.Dialect,
		Compare:           cfg.CompareOptions(),
		Weights:           cfg.Weights(),
		RequireAllMetrics: cfg.RequireAllMetrics,
	})
	rep := e.Run(ctx, cases, preds)
	util.Infof("done: %d/%d passed (required metrics)", rep.Summary.PassedAll, rep.Summary.Total)

	writer := report.New(cfg.Report.OutputDir)
	run, err := writer.Write(rep, cfg.RunInfo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
		os.Exit(1)
	}
	util.Infof("report written to %s", run.Dir)

	if cfg.Report.Archive {
		archive, err := writer.Archive(run)
		if err != nil {
			util.Errorf("archive report: %v", err)
		} else {
			util.Infof("report archived to %s", archive)
		}
	}

	up, err := uploader.FromConfig(cfg.Storage)
	if err != nil {
		util.Errorf("configure uploader: %v", err)
		return
	}
	if up.Enabled() {
		location, err := up.UploadDir(ctx, run.Dir)
		if err != nil {
			util.Errorf("upload report: %v", err)
			return
		}
		util.Highlightf("report uploaded to %s", location)
	}
}
