/*
Copyright © 2018-2025 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"io"

	"github.com/apex/log"
	"github.com/blacktop/nidsym/internal/config"
	"github.com/blacktop/nidsym/internal/db"
	"github.com/blacktop/nidsym/internal/metadata"
	"github.com/blacktop/nidsym/pkg/nid"
	"github.com/pkg/errors"
)

func loadImage(path string) (*metadata.Image, *nid.Context, error) {
	img, err := metadata.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("image", img.Name).Debug("Building symbol context")
	return img, img.Context(), nil
}

func openDatabase() (db.Database, error) {
	conf, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	d, err := db.New(conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create database")
	}
	if err := d.Connect(); err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s database", conf.Database.Driver)
	}
	return d, nil
}

func cacheSize() int {
	conf, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Warn("using default cache size")
		return 0
	}
	return conf.Cache.Size
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
