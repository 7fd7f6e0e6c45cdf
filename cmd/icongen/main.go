// icongen: writes the placeholder toolbar icons for the extension.
//
// There are no flags. Run it from the repository root and it (re)writes
// src/assets/icon-{16,48,128}.png.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/lia-extension/icons/icongen"
)

const assetDir = "src/assets"

var iconSizes = []int{16, 48, 128}

func iconSpecs(dir string) []icongen.IconSpec {
	specs := make([]icongen.IconSpec, 0, len(iconSizes))
	for _, size := range iconSizes {
		specs = append(specs, icongen.IconSpec{
			Size: size,
			Path: filepath.Join(dir, fmt.Sprintf("icon-%d.png", size)),
		})
	}
	return specs
}

func run(w io.Writer, dir string) error {
	gen, err := icongen.NewGenerator(icongen.DefaultOptions())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, spec := range iconSpecs(dir) {
		if err := gen.WriteFile(spec); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created %s\n", spec.Path)
	}
	fmt.Fprintln(w, "All icons created successfully!")
	return nil
}

func main() {
	if err := run(os.Stdout, assetDir); err != nil {
		log.Fatal(err)
	}
}
