package main

import "fmt"
import "errors"
import "runtime"

import "github.com/spf13/cobra"
import "golang.org/x/image/font/sfnt"
import "github.com/hashicorp/go-hclog"

import "github.com/tinne26/glyphrain/rain"
import "github.com/tinne26/glyphrain/font"

func newFramesCmd() *cobra.Command {
	cfg := rain.DefaultConfig()
	var fonts fontFlags
	var outDir string
	var workers int
	var allowMissing bool

	cmd := &cobra.Command{
		Use: "frames",
		Short: "Render the rain frames as transparent PNGs",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			gen, err := rain.NewGenerator(cfg)
			if err != nil { return err }
			fnt, err := selectFont(logger, &fonts, gen.Palette(), allowMissing)
			if err != nil { return err }

			exporter := rain.Exporter{
				Dir: outDir,
				Workers: workers,
				Font: fnt,
				Logger: logger,
			}
			paths, err := exporter.Export(cmd.Context(), gen)
			logger.Info("frames exported", "written", len(paths), "total", gen.FrameCount(), "dir", outDir)
			return err
		},
	}

	flags := cmd.Flags()
	bindRainFlags(flags, &cfg)
	fonts.bind(flags)
	flags.StringVarP(&outDir, "out", "o", "rain_frames", "output directory")
	flags.IntVar(&workers, "workers", runtime.NumCPU(), "frames rendered concurrently")
	flags.BoolVar(&allowMissing, "allow-missing-glyphs", false, "render even if no font can draw the whole palette, skipping missing glyphs")
	return cmd
}

// Selects the first candidate font that can draw the whole palette.
// If none can, the run fails unless allowMissing is set, in which case
// the first usable font is taken and the glyphs it lacks are skipped.
func selectFont(logger hclog.Logger, fonts *fontFlags, palette rain.Palette, allowMissing bool) (*sfnt.Font, error) {
	fnt, name, err := font.Select(fonts.candidates, fonts.selectDirs(), palette.String())
	if err == nil {
		logger.Info("font selected", "name", name)
		return fnt, nil
	}
	if !allowMissing || !errors.Is(err, font.ErrNoUsableFont) {
		return nil, fmt.Errorf("%w (use --font to pick another font or --allow-missing-glyphs to skip them)", err)
	}

	fnt, name, err = font.Select(fonts.candidates, fonts.selectDirs(), "")
	if err != nil { return nil, err }
	missing, err := font.GetMissingRunes(fnt, palette.String())
	if err != nil { return nil, err }
	logger.Warn("font is missing palette glyphs, they will be skipped", "font", name, "glyphs", string(missing))
	return fnt, nil
}
