// Command prefabcheck builds every prefab template into a scratch world and
// reports the ones that fail, so broken edits show up before the game loads
// them.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/milk9111/cubespawner/ecs"
	"github.com/milk9111/cubespawner/ecs/entity"
	"github.com/milk9111/cubespawner/prefabs"
)

func main() {
	var dir string
	cmd := &cobra.Command{
		Use:          "prefabcheck [template...]",
		Short:        "Validate prefab templates",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefabs.Dir = dir
			names := args
			if len(names) == 0 {
				names = templateNames(dir)
			}
			if failed := check(cmd.OutOrStdout(), names); failed > 0 {
				return fmt.Errorf("%d of %d templates failed", failed, len(names))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", prefabs.Dir, "on-disk prefab directory")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// templateNames merges the embedded set with any yaml files on disk.
func templateNames(dir string) []string {
	seen := make(map[string]struct{})
	for _, name := range prefabs.Names() {
		seen[name] = struct{}{}
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*.yaml"))
	for _, m := range matches {
		seen[prefabs.Clean(filepath.Base(m))] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func check(out io.Writer, names []string) int {
	b := entity.NewBuilder()
	failed := 0
	for _, name := range names {
		w := ecs.NewWorld()
		if _, err := b.Build(w, name); err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", color.RedString("FAIL"), name, err)
			continue
		}
		fmt.Fprintf(out, "%s %s\n", color.GreenString("ok  "), name)
	}
	return failed
}
