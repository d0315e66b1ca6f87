// Package report persists evaluation run artifacts to disk.
package report

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/kyungjunleeme/Text2SQL/internal/eval"
	"github.com/kyungjunleeme/Text2SQL/internal/runinfo"
	"github.com/kyungjunleeme/Text2SQL/internal/util"
)

const (
	// ArchiveName is the compressed artifact a run directory folds into.
	ArchiveName  = "report.tar.zst"
	ArchiveCodec = "zstd"

	reportFile  = "report.json"
	summaryFile = "summary.txt"
)

// Writer writes run artifacts into per-run directories.
type Writer struct {
	OutputDir string
}

// Run describes one written run directory.
type Run struct {
	ID  string
	Dir string
}

// New creates a writer rooted at outputDir.
func New(outputDir string) *Writer {
	return &Writer{OutputDir: outputDir}
}

// Write persists the report JSON and a plain-text summary into a fresh
// run directory named by a UUID.
func (w *Writer) Write(rep *eval.Report, info *runinfo.BasicInfo) (Run, error) {
	runID := uuid.New().String()
	if v7, err := uuid.NewV7(); err == nil {
		runID = v7.String()
	}
	dir := filepath.Join(w.OutputDir, "run_"+runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Run{}, err
	}
	run := Run{ID: runID, Dir: dir}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return Run{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, reportFile), data, 0o644); err != nil {
		return Run{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, summaryFile), summaryText(rep, info), 0o644); err != nil {
		return Run{}, err
	}
	return run, nil
}

func summaryText(rep *eval.Report, info *runinfo.BasicInfo) []byte {
	out := fmt.Sprintf("%d/%d passed (required metrics)\n", rep.Summary.PassedAll, rep.Summary.Total)
	if info != nil {
		if info.Provider != "" {
			out += "ci_provider: " + info.Provider + "\n"
		}
		if info.Repository != "" {
			out += "repository: " + info.Repository + "\n"
		}
		if info.Commit != "" {
			out += "commit: " + info.Commit + "\n"
		}
		if info.RunID != "" {
			out += "run_id: " + info.RunID + "\n"
		}
		if info.BuildURL != "" {
			out += "build_url: " + info.BuildURL + "\n"
		}
	}
	return []byte(out)
}

// Archive folds the run directory into a tar+zstd file next to its
// contents and returns the archive path.
func (w *Writer) Archive(run Run) (archivePath string, err error) {
	archivePath = filepath.Join(run.Dir, ArchiveName)
	defer func() {
		if err != nil {
			_ = os.Remove(archivePath)
		}
	}()
	file, err := os.Create(archivePath)
	if err != nil {
		return "", err
	}
	defer util.CloseWithErr(file, "archive output")

	zw, err := zstd.NewWriter(file)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := zw.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	tw := tar.NewWriter(zw)
	defer func() {
		if closeErr := tw.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	walkErr := filepath.WalkDir(run.Dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || d.Name() == ArchiveName {
			return nil
		}
		rel, err := filepath.Rel(run.Dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		_, copyErr := io.Copy(tw, src)
		util.CloseWithErr(src, "archive input")
		return copyErr
	})
	if walkErr != nil {
		return "", walkErr
	}
	return archivePath, nil
}
