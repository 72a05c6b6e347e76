package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"artifex/internal/fileutil"
	"artifex/internal/services"
)

// ToolVersion is stamped into every manifest.
var ToolVersion = "1.0"

// Base carries the fields shared by every manifest. Command manifests embed
// it so the encoded JSON stays a flat object.
type Base struct {
	Tool           string  `json:"tool"`
	ToolVersion    string  `json:"tool_version"`
	RunID          string  `json:"run_id"`
	CreatedAt      string  `json:"created_at"`
	Command        string  `json:"command"`
	InputPath      string  `json:"input_path"`
	InputSHA256    string  `json:"input_sha256"`
	InputSizeBytes int64   `json:"input_size_bytes"`
	CopiedPath     *string `json:"copied_path"`
}

// NewBase hashes input and stamps the run identifier carried by ctx, or a
// fresh one when ctx has none.
func NewBase(ctx context.Context, tool, command, input, copied string) (Base, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return Base{}, fmt.Errorf("resolve input path: %w", err)
	}
	sum, size, err := fileutil.SHA256File(abs)
	if err != nil {
		return Base{}, services.Wrap(services.ErrNotFound, command, "hash input", abs, err)
	}
	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
	}
	base := Base{
		Tool:           tool,
		ToolVersion:    ToolVersion,
		RunID:          runID,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Command:        command,
		InputPath:      abs,
		InputSHA256:    sum,
		InputSizeBytes: size,
	}
	if copied != "" {
		base.CopiedPath = &copied
	}
	return base, nil
}
