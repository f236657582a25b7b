package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"segbake/internal/config"
	"segbake/internal/project"
	"segbake/internal/scene"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// JSONMode reports whether --json was passed.
func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// projectConfig returns the loaded config, or a copy with the project
// database path replaced when override is non-empty.
func (c *commandContext) projectConfig(override string) (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	override = strings.TrimSpace(override)
	if override == "" {
		return cfg, nil
	}
	expanded, err := config.ExpandPath(override)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}
	clone := *cfg
	clone.Paths.Project = expanded
	return &clone, nil
}

// withStore opens the project database, honoring a --project override, and
// closes it when fn returns.
func (c *commandContext) withStore(projectOverride string, fn func(*config.Config, *project.Store) error) error {
	cfg, err := c.projectConfig(projectOverride)
	if err != nil {
		return err
	}
	store, err := project.Open(cfg)
	if err != nil {
		return fmt.Errorf("open project %s: %w", cfg.Paths.Project, err)
	}
	defer store.Close()
	return fn(cfg, store)
}

// loadSceneOrEmpty loads the stored scene. An empty project prints a hint
// (or the given empty JSON document) and returns a nil scene with no error.
func (c *commandContext) loadSceneOrEmpty(cmd *cobra.Command, cfg *config.Config, store *project.Store, empty any) (*scene.Scene, error) {
	sc, err := store.LoadScene(cmd.Context())
	if err == nil {
		return sc, nil
	}
	if !errors.Is(err, project.ErrNoScene) {
		return nil, err
	}
	if c.JSONMode() {
		return nil, writeJSON(cmd, empty)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Project %s has no rig; import one with `segbake rig import`\n", cfg.Paths.Project)
	return nil, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
