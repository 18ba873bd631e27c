package main

import "time"
import "image/color"

import "github.com/spf13/cobra"

import "github.com/tinne26/glyphrain/viewer"

func newViewCmd() *cobra.Command {
	var delay time.Duration
	var scale float64
	background := color.NRGBA{0, 0, 0, 255}

	cmd := &cobra.Command{
		Use: "view [glob]",
		Short: "Play exported frames in a window",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			glob := "rain_frames/frame_*.png"
			if len(args) == 1 { glob = args[0] }
			frames, err := viewer.LoadFrames(glob)
			if err != nil { return err }
			logger.Info("frames loaded", "count", len(frames), "glob", glob)

			return viewer.Run(frames, viewer.Options{
				Title: "glyphrain - " + glob,
				Delay: delay,
				Background: color.RGBA{background.R, background.G, background.B, 255},
				Scale: scale,
				Logger: logger,
			})
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&delay, "delay", 100*time.Millisecond, "delay between frames")
	flags.Float64Var(&scale, "scale", 1, "initial window scale")
	flags.Var(newColorValue(&background), "background", "window background color")
	return cmd
}
