// seehuhn.de/go/assetgen - convert game interface animations into bitmap fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Assetgen converts the Pip-Boy condition animations of Fallout 4 into a
// bitmap font.
//
// The program locates the game through the Steam configuration, extracts
// the animations from the interface archive and writes body.png, head.png
// and body.fnt into the current directory.  It takes no arguments.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/term"

	"seehuhn.de/go/assetgen"
	"seehuhn.de/go/assetgen/atlas"
	"seehuhn.de/go/assetgen/ba2"
	"seehuhn.de/go/assetgen/bmfont"
	"seehuhn.de/go/assetgen/internal/buildinfo"
	"seehuhn.de/go/assetgen/locate"
	"seehuhn.de/go/assetgen/quantize"
	"seehuhn.de/go/assetgen/render"
	"seehuhn.de/go/assetgen/swf"
)

var errFrameCount = errors.New("unexpected number of frames")

func main() {
	level := slog.LevelWarn
	if term.IsTerminal(int(os.Stderr.Fd())) {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	log.Info("starting", "version", buildinfo.Short("assetgen"))

	g := &generator{
		Config:  assetgen.DefaultConfig(),
		Locator: &locate.Locator{Logger: log},
		OutDir:  ".",
		Logger:  log,
	}
	err := g.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "assetgen:", err)
		os.Exit(1)
	}
}

// generator runs the conversion from the game archive to the font files.
type generator struct {
	Config  *assetgen.Config
	Locator *locate.Locator
	OutDir  string
	Logger  *slog.Logger
}

// sheetResult is an atlas page ready to be written.
type sheetResult struct {
	sheet      *assetgen.Sheet
	img        *image.Paletted
	placements []atlas.Placement
}

// Run executes all stages.  The returned error names the failing stage.
func (g *generator) Run() error {
	cfg := g.Config

	archivePath, err := g.Locator.Asset(cfg.AppID, cfg.Archive)
	if err != nil {
		return fmt.Errorf("locate game: %w", err)
	}
	g.Logger.Info("archive found", "path", archivePath)

	ar, err := ba2.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer ar.Close()

	body, err := g.loadDocument(ar, &cfg.Body)
	if err != nil {
		return err
	}
	head, err := g.loadDocument(ar, &cfg.Head)
	if err != nil {
		return err
	}
	g.logTags(cfg.Head.Entry, head)

	var pages []sheetResult
	for _, item := range []struct {
		sheet *assetgen.Sheet
		doc   *swf.Document
	}{
		{&cfg.Body, body},
		{&cfg.Head, head},
	} {
		res, err := g.pack(item.sheet, item.doc)
		if err != nil {
			return err
		}
		pages = append(pages, res)
	}

	// All outputs are encoded and checked before the first file is written.
	var out []outputFile
	for _, p := range pages {
		data, err := encodePNG(p.sheet.Image, p.img)
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		out = append(out, outputFile{p.sheet.Image, data})
	}
	data, err := formatFont(pages)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	out = append(out, outputFile{cfg.FontFile, data})

	err = g.writeFiles(out)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

type outputFile struct {
	name string
	data []byte
}

// loadDocument extracts and parses the SWF document of a sheet.
func (g *generator) loadDocument(ar *ba2.Reader, sheet *assetgen.Sheet) (*swf.Document, error) {
	data, err := ar.Extract(sheet.Entry)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", sheet.Entry, err)
	}
	doc, err := swf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", sheet.Entry, err)
	}
	if sheet.FrameCount != 0 && doc.FrameCount != sheet.FrameCount {
		err := &assetgen.ParseError{
			Format: "SWF",
			Err: fmt.Errorf("%w: %d instead of %d",
				errFrameCount, doc.FrameCount, sheet.FrameCount),
		}
		return nil, fmt.Errorf("parse %s: %w", sheet.Entry, err)
	}
	g.Logger.Info("document loaded",
		"entry", sheet.Entry,
		"version", doc.Version,
		"frames", doc.FrameCount,
		"characters", len(doc.Characters))
	return doc, nil
}

// logTags logs how often each tag type occurs in a document.
func (g *generator) logTags(name string, doc *swf.Document) {
	counts := make(map[string]int)
	for _, tag := range doc.Tags {
		counts[tag.Code().String()]++
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	for _, code := range codes {
		g.Logger.Info("tag", "document", name, "type", code, "count", counts[code])
	}
}

// pack renders the frames of one sheet and reduces the atlas to gray.
func (g *generator) pack(sheet *assetgen.Sheet, doc *swf.Document) (sheetResult, error) {
	r := render.New(doc)
	r.Logger = g.Logger
	p := &atlas.Packer{Logger: g.Logger.With("entry", sheet.Entry)}
	img, placements, err := p.Pack(r, sheet.Frames, g.Config.Scale)
	if err != nil {
		return sheetResult{}, fmt.Errorf("pack %s: %w", sheet.Entry, err)
	}
	return sheetResult{
		sheet:      sheet,
		img:        quantize.Reduce(img),
		placements: placements,
	}, nil
}

func encodePNG(name string, img image.Image) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := png.Encode(buf, img)
	if err != nil {
		return nil, &assetgen.IOError{Path: name, Err: err}
	}
	return buf.Bytes(), nil
}

// formatFont returns the font descriptor for the given pages.
func formatFont(pages []sheetResult) ([]byte, error) {
	var common bmfont.Common
	var fontPages []bmfont.Page
	total := 0
	for _, p := range pages {
		b := p.img.Bounds()
		common.ScaleW = max(common.ScaleW, b.Dx())
		common.ScaleH = max(common.ScaleH, b.Dy())
		fontPages = append(fontPages, bmfont.Page{
			File:      p.sheet.Image,
			FirstChar: p.sheet.FirstChar,
			Glyphs:    p.placements,
		})
		total += len(p.placements)
	}
	common.LineHeight = common.ScaleH
	common.Base = common.ScaleH

	buf := &bytes.Buffer{}
	err := bmfont.Write(buf, fontPages, common)
	if err != nil {
		return nil, err
	}

	// Check that the descriptor can be read back.
	font, err := bmfont.Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	if len(font.Chars) != total || len(font.Pages) != len(pages) {
		return nil, fmt.Errorf("descriptor has %d characters on %d pages, want %d on %d",
			len(font.Chars), len(font.Pages), total, len(pages))
	}
	return buf.Bytes(), nil
}

// writeFiles writes all output files.  If one of the files cannot be
// written, the files written so far are removed again.
func (g *generator) writeFiles(files []outputFile) error {
	var done []string
	for _, f := range files {
		fname := filepath.Join(g.OutDir, f.name)
		err := os.WriteFile(fname, f.data, 0o644)
		if err != nil {
			for _, old := range done {
				os.Remove(old)
			}
			return &assetgen.IOError{Path: fname, Err: err}
		}
		done = append(done, fname)
		g.Logger.Info("file written", "path", fname, "bytes", len(f.data))
	}
	return nil
}
