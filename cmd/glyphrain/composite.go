package main

import "runtime"
import "strings"
import "unicode"

import "github.com/spf13/cobra"
import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/glyphrain/font"
import "github.com/tinne26/glyphrain/composite"

func newCompositeCmd() *cobra.Command {
	cfg := composite.DefaultConfig()
	var fonts fontFlags
	var texts []string
	var maskMode string
	var textColor = composite.NewTextOverlay("", 1, composite.Center).Color
	var backdrop bool

	cmd := &cobra.Command{
		Use: "composite",
		Short: "Composite rain frames over a background into an animated GIF",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			mode, err := composite.ParseMaskMode(maskMode)
			if err != nil { return err }
			cfg.MaskMode = mode

			cfg.Overlays = cfg.Overlays[:0]
			for _, text := range texts {
				overlay, err := composite.ParseTextOverlay(text)
				if err != nil { return err }
				overlay.Color = textColor
				overlay.Backdrop = backdrop
				cfg.Overlays = append(cfg.Overlays, overlay)
			}

			var fnt *sfnt.Font
			if len(cfg.Overlays) > 0 {
				var name string
				fnt, name, err = font.Select(fonts.candidates, fonts.selectDirs(), overlayText(cfg.Overlays))
				if err != nil { return err }
				logger.Debug("overlay font selected", "name", name)
			}

			compositor := composite.Compositor{ Config: cfg, Font: fnt, Logger: logger }
			result, err := compositor.Run(cmd.Context())
			if err != nil { return err }
			logger.Info("gif written", "path", result.Output, "frames", result.Frames,
				"width", result.Width, "height", result.Height)
			return nil
		},
	}

	flags := cmd.Flags()
	fonts.bind(flags)
	flags.StringVarP(&cfg.Background, "background", "b", "", "background image")
	flags.StringVarP(&cfg.Frames, "frames", "f", cfg.Frames, "glob matching the overlay frames")
	flags.StringVarP(&cfg.Output, "out", "o", cfg.Output, "output GIF path")
	flags.StringVar(&cfg.Mask, "mask", "", "mask image, or a pattern like mask_%03d.png for per-frame masks")
	flags.BoolVar(&cfg.InvertMask, "invert-mask", false, "invert the mask luminance")
	flags.StringVar(&maskMode, "mask-mode", cfg.MaskMode.String(), "mask mode (multiply or copy)")
	flags.IntVar(&cfg.DelayMs, "delay", cfg.DelayMs, "delay between frames in milliseconds")
	flags.BoolVar(&cfg.Dither, "dither", false, "use Floyd-Steinberg dithering")
	flags.BoolVar(&cfg.Optimize, "optimize", cfg.Optimize, "make unchanged pixels transparent")
	flags.Float64Var(&cfg.Fuzz, "fuzz", 0, "color tolerance in [0, 1] for the optimization")
	flags.StringArrayVar(&texts, "text", nil, "text overlay as gravity:size:margin:text, repeatable")
	flags.Var(newColorValue(&textColor), "text-color", "text overlay color")
	flags.BoolVar(&backdrop, "backdrop", false, "draw a rounded backdrop behind text overlays")
	flags.StringVar(&cfg.DebugDir, "debug-dir", "", "directory to also write the masked overlays to")
	flags.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "frames composed concurrently")
	_ = cmd.MarkFlagRequired("background")
	return cmd
}

// Returns the text of all the overlays without spaces, which the
// overlay font must be able to draw.
func overlayText(overlays []composite.TextOverlay) string {
	var builder strings.Builder
	for _, overlay := range overlays {
		for _, codePoint := range overlay.Text {
			if !unicode.IsSpace(codePoint) { builder.WriteRune(codePoint) }
		}
	}
	return builder.String()
}
