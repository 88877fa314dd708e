// Package main generates CLI reference documentation for the dealsense
// server and the dsctl client, one subdirectory per binary.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	server "github.com/donaldgifford/dealsense/cmd/dealsense/cmd"
	client "github.com/donaldgifford/dealsense/cmd/dsctl/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	if err := generate(*output, commandTrees()); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func commandTrees() []*cobra.Command {
	return []*cobra.Command{server.Root(), client.Root()}
}

// generate writes a markdown tree for each root into output/<root name>.
func generate(output string, roots []*cobra.Command) error {
	for _, root := range roots {
		dir := filepath.Join(output, root.Name())
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}

		root.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(root, dir); err != nil {
			return fmt.Errorf("generating %s docs: %w", root.Name(), err)
		}
	}
	return nil
}
