package icongen

import (
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// loadPreferredFont returns the first font in paths that reads and parses, or
// nil. For collections (.ttc) the first face is used.
func loadPreferredFont(paths []string) *opentype.Font {
	for _, path := range paths {
		f, err := loadFontFile(path)
		if err != nil {
			continue
		}
		return f
	}
	log.Printf("icongen: no preferred font found in %v, using built-in 7x13 face", paths)
	return nil
}

func loadFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// ParseCollection also accepts a single TTF/OTF as a collection of one.
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	return coll.Font(0)
}

// faceForSize never fails: anything that goes wrong with the preferred font
// drops us to basicfont.
func (g *Generator) faceForSize(size int) font.Face {
	if g.font == nil {
		return basicfont.Face7x13
	}
	pts := int(float64(size) * g.fontScale)
	if pts < 1 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(g.font, &opentype.FaceOptions{
		Size:    float64(pts),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("icongen: %d px face: %s, using built-in 7x13 face", pts, err)
		return basicfont.Face7x13
	}
	return face
}
