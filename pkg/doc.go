// Package pkg provides the core libraries for Thumbstudio thumbnail compositing.
//
// # Overview
//
// Thumbstudio turns a background photo and a style into a 16:9 video
// thumbnail: graded and transformed background, decorative overlays, and
// styled title text, exported as a 1024×576 PNG. The pkg directory is
// organized into four main areas:
//
//  1. [style] - The style record, partial patches, presets and TOML style files
//  2. [layers] and [compose] - The ordered layer stack and its geometry
//  3. [export] - Rasterization of a surface and delivery of the PNG
//  4. [studio] and [pipeline] - Editing state and one-shot orchestration
//
// # Architecture
//
// The typical data flow through Thumbstudio:
//
//	style.Config + asset.Asset
//	         ↓
//	    [layers] package (declarative layer stack, bottom to top)
//	         ↓
//	    [compose] package (surface sized for a display width)
//	         ↓
//	    [export] package (rasterize at 1024px wide, write PNG)
//
// # Quick Start
//
// Compose and export a thumbnail with an interactive session:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/thumbstudio/pkg/export"
//	    "github.com/matzehuels/thumbstudio/pkg/studio"
//	    "github.com/matzehuels/thumbstudio/pkg/style"
//	)
//
//	// 1. Start a session and apply a preset
//	s := studio.New(studio.Options{})
//	s.ApplyPreset(style.PresetCinematic)
//
//	// 2. Load a background image (asynchronous)
//	res := <-s.UploadFile(ctx, "bg.jpg")
//
//	// 3. Compose the surface at the on-screen width
//	surf, _ := s.Surface(ctx, 1280)
//
//	// 4. Export
//	exp := export.NewExporter(nil, export.NewFileSink("."))
//	result, _ := exp.Export(ctx, surf)
//
// Or run everything in one call with [pipeline.Runner.Execute].
//
// # Main Packages
//
//   - [asset]: Decoding uploaded images and their content digest
//   - [fonts]: Embedded Go fonts and face caching
//   - [text]: Text effects (glow, extrude, stroke) as shadow lists
//   - [cache]: File and null caches for rendered PNGs
//   - [errors]: Coded errors with user-facing messages
//   - [observability]: Hooks for uploads, style changes, composes and exports
//   - [buildinfo]: Version information set at link time
package pkg
