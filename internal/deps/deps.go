package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"artifex/internal/services"
)

// Requirement defines an external binary the tools rely on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Command = path
		results = append(results, status)
	}
	return results
}

// Require resolves binary on PATH, returning a missing-dependency error that
// names the tool when it cannot be found.
func Require(name, binary string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "", services.Wrap(services.ErrDependencyMissing, name, "lookup", "binary not configured", nil)
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", services.Wrap(services.ErrDependencyMissing, name, "lookup", fmt.Sprintf("%s is not installed or not on PATH", binary), err)
	}
	return path, nil
}
