package cmd

import (
	"github.com/spf13/cobra"

	"brickyard.GO/core/registry"
)

func commands() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register queues a command for the root CLI. Extension packages call this
// from init(); panics once Apply has locked the registry.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(commands(), c))
}

// Apply attaches every registered command to the root and locks the registry.
func Apply() {
	for _, c := range commands() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
