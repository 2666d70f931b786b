package cli

import (
	"contactcard/internal/config"
	"contactcard/internal/paths"
)

// loadProject resolves the project root, reads contactcard.yaml and applies
// its path overrides.
func loadProject() (paths.ProjectPaths, config.Config, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, err
	}
	return paths.ApplyConfig(pp, cfg), cfg, nil
}
