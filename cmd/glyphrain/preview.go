package main

import "time"

import "github.com/spf13/cobra"
import "github.com/gdamore/tcell/v2"

import "github.com/tinne26/glyphrain/rain"
import "github.com/tinne26/glyphrain/preview"

func newPreviewCmd() *cobra.Command {
	cfg := rain.DefaultConfig()
	var delay time.Duration

	cmd := &cobra.Command{
		Use: "preview",
		Short: "Play the rain in the terminal, one cell per glyph",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			gen, err := rain.NewGenerator(cfg)
			if err != nil { return err }
			screen, err := tcell.NewScreen()
			if err != nil { return err }

			player := preview.Player{
				Screen: screen,
				Generator: gen,
				Delay: delay,
				Logger: logger,
			}
			return player.Run(cmd.Context())
		},
	}

	flags := cmd.Flags()
	bindRainFlags(flags, &cfg)
	flags.DurationVar(&delay, "delay", 100*time.Millisecond, "delay between frames")
	return cmd
}
