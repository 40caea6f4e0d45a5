// Package assets prepares the sprite directory used by graphical front ends.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	_ "golang.org/x/image/webp" // accept WebP sprites supplied by artists
)

// SpriteSize is the edge length of the generated placeholder sprites.
const SpriteSize = 50

// Result reports the outcome of Ensure in the shape returned by the HTTP API.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Placeholder describes one sprite written when missing.
type Placeholder struct {
	Filename string
	Fill     color.RGBA
	Outline  color.RGBA
}

// Placeholders lists the sprites Ensure provides.
var Placeholders = []Placeholder{
	{Filename: "player.png", Fill: color.RGBA{R: 0x33, G: 0x99, B: 0xff, A: 0xff}, Outline: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	{Filename: "zombie.png", Fill: color.RGBA{R: 0x44, G: 0xaa, B: 0x44, A: 0xff}, Outline: color.RGBA{R: 0x88, G: 0x00, B: 0x00, A: 0xff}},
}

// Ensure creates dir and writes any missing placeholder sprites.
// Existing files that decode as PNG or WebP are left untouched; anything
// else under a sprite name is replaced. Failures are reported in the Result
// rather than returned so callers can forward them verbatim.
func Ensure(dir string) Result {
	if err := ensure(dir); err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	return Result{Success: true, Message: "Assets directory created"}
}

func ensure(dir string) error {
	if dir == "" {
		return errors.New("assets: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("assets: cannot create %s: %w", dir, err)
	}
	for _, p := range Placeholders {
		path := filepath.Join(dir, p.Filename)
		ok, err := Decodable(path)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		data, err := Sprite(p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("assets: cannot write %s: %w", path, err)
		}
	}
	return nil
}

// Decodable reports whether path holds an image in a registered format.
// A missing file is not decodable and not an error.
func Decodable(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("assets: cannot open %s: %w", path, err)
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil, nil
}

// Sprite renders p as a SpriteSize square PNG with a one pixel outline.
func Sprite(p Placeholder) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	for y := 0; y < SpriteSize; y++ {
		for x := 0; x < SpriteSize; x++ {
			c := p.Fill
			if x == 0 || y == 0 || x == SpriteSize-1 || y == SpriteSize-1 {
				c = p.Outline
			}
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("assets: cannot encode %s: %w", p.Filename, err)
	}
	return buf.Bytes(), nil
}
