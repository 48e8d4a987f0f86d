// Package metadata reads a module image's dynamic-link identifier tables and
// symbol lists from a YAML description and builds a resolution context from it.
package metadata

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/blacktop/nidsym/internal/utils"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Image is the dynamic metadata of a single module image.
type Image struct {
	Name            string      `yaml:"name" json:"name"`
	ImportModules   []nid.Entry `yaml:"import_modules" json:"import_modules,omitempty"`
	ImportLibraries []nid.Entry `yaml:"import_libraries" json:"import_libraries,omitempty"`
	ExportModules   []nid.Entry `yaml:"export_modules" json:"export_modules,omitempty"`
	ExportLibraries []nid.Entry `yaml:"export_libraries" json:"export_libraries,omitempty"`
	ImportSymbols   []string    `yaml:"import_symbols" json:"import_symbols,omitempty"`
	ExportSymbols   []string    `yaml:"export_symbols" json:"export_symbols,omitempty"`
}

// ModuleInfo summarizes an Image.
type ModuleInfo struct {
	Name            string `json:"name"`
	ImportModules   int    `json:"import_modules"`
	ImportLibraries int    `json:"import_libraries"`
	ExportModules   int    `json:"export_modules"`
	ExportLibraries int    `json:"export_libraries"`
	ImportSymbols   int    `json:"import_symbols"`
	ExportSymbols   int    `json:"export_symbols"`
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read metadata file %s", path)
	}
	img, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse metadata file %s", path)
	}
	if img.Name == "" {
		img.Name = filepath.Base(path)
	}
	return img, nil
}

// Parse decodes a YAML image description. Unknown keys are rejected.
func Parse(data []byte) (*Image, error) {
	var img Image
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&img); err != nil {
		return nil, err
	}
	if err := img.verify(); err != nil {
		return nil, err
	}
	return &img, nil
}

func (i *Image) verify() error {
	tables := []struct {
		name    string
		entries []nid.Entry
	}{
		{"import_modules", i.ImportModules},
		{"import_libraries", i.ImportLibraries},
		{"export_modules", i.ExportModules},
		{"export_libraries", i.ExportLibraries},
	}
	for _, t := range tables {
		seen := make(map[uint64]string, len(t.entries))
		for _, e := range t.entries {
			if e.Name == "" {
				return fmt.Errorf("%s: id %d has no name", t.name, e.ID)
			}
			if prev, dup := seen[e.ID]; dup {
				log.WithFields(log.Fields{
					"table": t.name,
					"id":    e.ID,
					"first": prev,
					"dup":   e.Name,
				}).Warn("duplicate identifier, first entry wins")
				continue
			}
			seen[e.ID] = e.Name
		}
	}
	return nil
}

// Context builds the identifier tables of the image and resolves its import
// symbols into the import index. The returned context is not modified again.
func (i *Image) Context() *nid.Context {
	c := &nid.Context{
		Name:            i.Name,
		ImportModules:   nid.NewTable(i.ImportModules...),
		ImportLibraries: nid.NewTable(i.ImportLibraries...),
		ExportModules:   nid.NewTable(i.ExportModules...),
		ExportLibraries: nid.NewTable(i.ExportLibraries...),
	}
	c.Imports = nid.BuildImportIndex(c, i.ImportSymbols)
	if missed := len(utils.Unique(i.ImportSymbols)) - c.Imports.Len(); missed > 0 {
		log.WithFields(log.Fields{
			"image":      i.Name,
			"unresolved": missed,
		}).Warn("some import symbols could not be resolved")
	}
	return c
}

// ModuleInfo returns the table and symbol counts of the image.
func (i *Image) ModuleInfo() ModuleInfo {
	return ModuleInfo{
		Name:            i.Name,
		ImportModules:   len(i.ImportModules),
		ImportLibraries: len(i.ImportLibraries),
		ExportModules:   len(i.ExportModules),
		ExportLibraries: len(i.ExportLibraries),
		ImportSymbols:   len(i.ImportSymbols),
		ExportSymbols:   len(i.ExportSymbols),
	}
}
