package preflight

import (
	"artifex/internal/config"
	"artifex/internal/deps"
)

// Tool selects which binary's requirements are evaluated.
type Tool string

const (
	ToolPDF     Tool = "pdftool"
	ToolYouTube Tool = "yttool"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes the checks relevant to tool. The artifact root is checked
// first, followed by the external binaries and, for pdftool, the OCR engine.
func RunAll(cfg *config.Config, tool Tool) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	root, err := cfg.ProjectRoot()
	if err != nil {
		results = append(results, Result{Name: "Project root", Detail: err.Error()})
	} else {
		results = append(results, CheckDirectoryAccess("Project root", root))
	}

	for _, status := range CheckSystemDeps(cfg, tool) {
		results = append(results, fromStatus(status))
	}

	if tool == ToolPDF {
		results = append(results, CheckOCREngine(cfg))
	}
	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}

func fromStatus(status deps.Status) Result {
	detail := status.Detail
	if status.Available {
		detail = status.Command
	}
	return Result{
		Name:     status.Name,
		Passed:   status.Available,
		Optional: status.Optional,
		Detail:   detail,
	}
}
