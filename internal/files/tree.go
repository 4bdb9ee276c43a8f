// Package files renders a product's on-disk folder and opens it in a file manager.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Subdirs is the fixed layout of a product folder.
var Subdirs = []string{"images", "models", "notes", "print_files"}

// MetadataFile is the optional leaf at the product root.
const MetadataFile = "metadata.json"

// NoFilesMessage is returned by Tree when the product folder is absent.
const NoFilesMessage = "No files found for this product"

// ProductDir returns <root>/<sku>.
func ProductDir(root, sku string) string {
	return filepath.Join(root, sku)
}

// Tree renders the folder of sku under root as an indented listing.
// It never fails: unreadable or missing pieces render as (empty).
func Tree(root, sku string) string {
	base := ProductDir(root, sku)
	if info, err := os.Stat(base); err != nil || !info.IsDir() {
		return NoFilesMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📁 %s/\n", sku)

	_, metaErr := os.Stat(filepath.Join(base, MetadataFile))
	hasMeta := metaErr == nil

	for i, sub := range Subdirs {
		last := i == len(Subdirs)-1 && !hasMeta
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintf(&b, "%s📁 %s/\n", branch, sub)

		names := listFiles(filepath.Join(base, sub))
		if len(names) == 0 {
			fmt.Fprintf(&b, "%s└── (empty)\n", indent)
			continue
		}
		for j, name := range names {
			conn := "├── "
			if j == len(names)-1 {
				conn = "└── "
			}
			fmt.Fprintf(&b, "%s%s📄 %s\n", indent, conn, name)
		}
	}

	if hasMeta {
		fmt.Fprintf(&b, "└── 📄 %s\n", MetadataFile)
	}

	return strings.TrimRight(b.String(), "\n")
}

func listFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
