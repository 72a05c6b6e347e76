package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"artifex/internal/fileutil"
)

// CopyPlan describes how a source document lands in its artifact directory.
type CopyPlan struct {
	Source string
	Dest   string
	// NeedsCopy is false when Dest is Source or already holds identical bytes.
	NeedsCopy bool
}

// PlanCopy decides whether src must be copied into dir. An existing copy with
// the same SHA-256 is reused; a differing one is left for EnsureWritable to
// reject via Outputs.
func PlanCopy(src, dir string) (CopyPlan, error) {
	dest := filepath.Join(dir, filepath.Base(src))
	plan := CopyPlan{Source: src, Dest: dest, NeedsCopy: true}
	if fileutil.SamePath(src, dest) {
		plan.NeedsCopy = false
		return plan, nil
	}
	if _, err := os.Stat(dest); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return plan, nil
		}
		return CopyPlan{}, fmt.Errorf("stat copy destination: %w", err)
	}
	srcSum, _, err := fileutil.SHA256File(src)
	if err != nil {
		return CopyPlan{}, fmt.Errorf("hash source: %w", err)
	}
	destSum, _, err := fileutil.SHA256File(dest)
	if err != nil {
		return CopyPlan{}, fmt.Errorf("hash existing copy: %w", err)
	}
	if srcSum == destSum {
		plan.NeedsCopy = false
	}
	return plan, nil
}

// Outputs lists the paths the plan would create, for the overwrite guard.
func (p CopyPlan) Outputs() []string {
	if !p.NeedsCopy {
		return nil
	}
	return []string{p.Dest}
}

// Execute performs the copy through w so dry runs only report it.
func (p CopyPlan) Execute(w *Writer) error {
	if !p.NeedsCopy {
		return nil
	}
	if w.DryRun {
		w.Planned(p.Dest)
		return nil
	}
	if err := fileutil.CopyFile(p.Source, p.Dest); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(p.Source), err)
	}
	w.Wrote(p.Dest)
	return nil
}
