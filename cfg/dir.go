// Package cfg resolves the on-disk location used to persist user-level
// flowgraph configuration (graph definitions, CLI defaults).
package cfg

import (
	"os"
	"path/filepath"
	"sync"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/flowgraph/flowgraph/printer"
)

var (
	cfgDir     string
	cfgDirOnce sync.Once
)

// Dir returns $HOME/.flowgraph, creating it if necessary. Safe to call
// concurrently; the directory is resolved once.
func Dir() string {
	cfgDirOnce.Do(initCfgDir)
	return cfgDir
}

func initCfgDir() {
	home, err := homedir.Dir()
	if err != nil {
		printer.Stderr.Warningf("Failed to find $HOME, defaulting to '.', error: %v", err)
		home = "."
	}
	cfgDir = filepath.Join(home, ".flowgraph")

	if stat, err := os.Stat(cfgDir); os.IsNotExist(err) {
		if err := os.Mkdir(cfgDir, 0700); err != nil {
			printer.Stderr.Warningf("Failed to create config directory %s, persistent config will not work, error: %v\n", cfgDir, err)
		}
	} else if err != nil {
		printer.Stderr.Errorf("Failed to stat %s: %v\n", cfgDir, err)
	} else if !stat.IsDir() {
		printer.Stderr.Errorf("%s is not a directory, please remove.\n", cfgDir)
	}
}
