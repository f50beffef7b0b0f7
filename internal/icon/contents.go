package icon

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Mavwarf/voxa-build/internal/paths"
)

// ContentsFileName is the asset catalog manifest inside an .appiconset.
const ContentsFileName = "Contents.json"

type contentsImage struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
}

type contentsInfo struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

type contents struct {
	Images []contentsImage `json:"images"`
	Info   contentsInfo    `json:"info"`
}

// Contents returns the Contents.json document describing Variants().
func Contents() ([]byte, error) {
	c := contents{Info: contentsInfo{Author: "xcode", Version: 1}}
	for _, v := range Variants() {
		c.Images = append(c.Images, contentsImage{
			Filename: v.FileName(),
			Idiom:    "mac",
			Scale:    fmt.Sprintf("%dx", v.Scale),
			Size:     fmt.Sprintf("%dx%d", v.Size, v.Size),
		})
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteContents writes Contents.json into the icon set directory dir.
func WriteContents(dir string) (string, error) {
	data, err := Contents()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, ContentsFileName)
	if err := paths.AtomicWrite(p, data); err != nil {
		return "", fmt.Errorf("writing %s: %w", p, err)
	}
	return p, nil
}
