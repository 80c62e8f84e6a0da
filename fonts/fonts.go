package fonts

import (
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Bold    FontName = "bold"
)

var (
	sources = map[FontName]*truetype.Font{}
	faces   = map[faceKey]font.Face{}
)

type faceKey struct {
	name FontName
	size int
}

// LoadDefaults registers the bundled Go fonts.
func LoadDefaults() error {
	if err := LoadFont(Regular, goregular.TTF); err != nil {
		return err
	}
	return LoadFont(Bold, gobold.TTF)
}

func LoadFont(name FontName, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	sources[name] = f
	for k := range faces {
		if k.name == name {
			delete(faces, k)
		}
	}
	return nil
}

// Face returns the face for name at the given pixel size. Faces are cached
// per whole-pixel size so resizing the window only builds each size once.
func (f FontName) Face(size float64) font.Face {
	key := faceKey{name: f, size: int(math.Round(size))}
	if key.size < 1 {
		key.size = 1
	}
	if face, ok := faces[key]; ok {
		return face
	}
	src, ok := sources[f]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", f))
	}
	face := truetype.NewFace(src, &truetype.Options{Size: float64(key.size), Hinting: font.HintingFull})
	faces[key] = face
	return face
}

// Measure returns the advance width of s and the face's ascent, in pixels.
func Measure(face font.Face, s string) (width, ascent int) {
	return font.MeasureString(face, s).Ceil(), face.Metrics().Ascent.Ceil()
}
