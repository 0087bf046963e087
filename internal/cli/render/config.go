package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bosagora/sidechain-deployer/internal/usecase"
	"gopkg.in/yaml.v3"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// Render implements Renderer
func (r *ConfigRenderer) Render(result *usecase.ShowConfigResult) error {
	fmt.Fprintln(r.out, "📋 Current config:")
	if result.ConfigFile != "" {
		fmt.Fprintf(r.out, "📁 config file: %s\n\n", getRelativePath(result.ConfigFile))
	} else {
		fmt.Fprintln(r.out, faintStyle.Sprint("No scdeploy.toml found, using defaults"))
		fmt.Fprintln(r.out)
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
