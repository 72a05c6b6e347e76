package pdftools

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
)

// CleanOptions configures the clean command.
type CleanOptions struct {
	PDFPath      string
	OutDir       string
	ProjectRoot  string
	ArtifactsDir string
	DryRun       bool
}

// Clean removes the artifact directory for a PDF. A missing directory is not
// an error. It returns whether anything was removed.
func (s *Service) Clean(ctx context.Context, opts CleanOptions) (bool, error) {
	const command = "clean"

	input, err := resolveInput(command, opts.PDFPath)
	if err != nil {
		return false, err
	}
	dir, err := outputDir(input, Common{OutDir: opts.OutDir, ProjectRoot: opts.ProjectRoot, ArtifactsDir: opts.ArtifactsDir})
	if err != nil {
		return false, err
	}
	if opts.DryRun {
		s.printf("[dry-run] Would remove %s\n", dir)
		return false, nil
	}

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.printf("No artifacts found at %s\n", dir)
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", dir, err)
	}
	lock, err := artifacts.Acquire(command, dir)
	if err != nil {
		return false, err
	}
	defer lock.Release()
	if err := os.RemoveAll(dir); err != nil {
		return false, fmt.Errorf("remove %s: %w", dir, err)
	}
	s.printf("Removed %s\n", dir)
	s.logger(ctx).Info("artifacts removed", logging.String("out_dir", dir))
	return true, nil
}
