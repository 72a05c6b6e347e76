package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// PDFBaseDir holds per-document artifact directories under the project root.
	PDFBaseDir = ".pdf-artifacts"
	// YouTubeBaseDir holds per-video artifact directories under the project root.
	YouTubeBaseDir = ".youtube-artifacts"
)

// ProjectRoot resolves root against the working directory. Empty means the
// working directory itself.
func ProjectRoot(root string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return cwd, nil
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(cwd, root)
	}
	return filepath.Clean(root), nil
}

// ResolveOutDir returns the artifact directory for name. Without outDir the
// directory is <root>/<baseDir>/<name>; a relative outDir is joined to the
// project root. The directory is not created.
func ResolveOutDir(name, outDir, projectRoot, baseDir string) (string, error) {
	root, err := ProjectRoot(projectRoot)
	if err != nil {
		return "", err
	}
	outDir = strings.TrimSpace(outDir)
	if outDir == "" {
		return filepath.Join(root, baseDir, name), nil
	}
	if filepath.IsAbs(outDir) {
		return filepath.Clean(outDir), nil
	}
	return filepath.Join(root, outDir), nil
}

// Stem returns the file name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Ensure creates dir and its parents.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
