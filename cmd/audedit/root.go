package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/orenbm/audedit"
	"github.com/orenbm/audedit/clip"
	"github.com/orenbm/audedit/segment"
	"github.com/orenbm/audedit/stitch"
)

var rootCmd = &cobra.Command{
	Use:   "audedit",
	Short: "Edit and combine audio recordings at the PCM level",
	Long: fmt.Sprintf(`audedit removes, silences or splits time ranges inside a recording and
concatenates recordings of mixed formats into one uncompressed WAV.

Native input formats: %s. Other containers are transcoded through ffmpeg
when it is installed. Output is always 16-bit PCM WAV.

Time ranges are given as start-end duration pairs, e.g. --segment 10s-15s
or --segment 1m30s-1m45.5s.`, strings.Join(clip.SupportedFormats(), ", ")),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(muteCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(stitchCmd)
	rootCmd.AddCommand(durationCmd)
}

// parseSegments turns "10s-15s" flag values into segments.
func parseSegments(specs []string) ([]segment.Segment, error) {
	segs := make([]segment.Segment, 0, len(specs))
	for _, spec := range specs {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("segment %q: want start-end, e.g. 10s-15s", spec)
		}
		start, err := time.ParseDuration(parts[0])
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", spec, err)
		}
		end, err := time.ParseDuration(parts[1])
		if err != nil {
			return nil, fmt.Errorf("segment %q: %w", spec, err)
		}
		segs = append(segs, segment.Segment{Start: start, End: end})
	}
	return segs, nil
}

var (
	removeSegments []string
	removeOut      string
)

var removeCmd = &cobra.Command{
	Use:   "remove <input>",
	Short: "Cut time ranges out of a recording",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		segs, err := parseSegments(removeSegments)
		if err != nil {
			return err
		}
		if err := audedit.RemoveSegments(args[0], segs, removeOut); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", removeOut)
		return nil
	},
}

var (
	muteSegments []string
	muteOut      string
)

var muteCmd = &cobra.Command{
	Use:   "mute <input>",
	Short: "Silence time ranges without changing the recording length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		segs, err := parseSegments(muteSegments)
		if err != nil {
			return err
		}
		if err := audedit.MuteSegments(args[0], segs, muteOut); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", muteOut)
		return nil
	},
}

var (
	splitPoints  []time.Duration
	splitOutDir  string
	splitPattern string
)

var splitCmd = &cobra.Command{
	Use:   "split <input>",
	Short: "Cut a recording into contiguous parts at timestamps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := audedit.SplitAudioFile(args[0], splitOutDir, splitPattern, splitPoints)
		if err != nil {
			return err
		}
		for _, p := range paths {
			cmd.Println(p)
		}
		return nil
	},
}

var (
	stitchOut       string
	stitchSilence   time.Duration
	stitchCrossfade time.Duration
	stitchNormalize bool
	stitchPeak      float64
)

var stitchCmd = &cobra.Command{
	Use:   "stitch <input>...",
	Short: "Concatenate recordings into one WAV",
	Long: `Concatenate two or more recordings, in argument order, into a single
16-bit PCM WAV. The first input's sample rate and channel count become the
output format; other inputs are resampled to match.

--silence pads every joint with zeros; --crossfade instead overlaps and
blends adjacent recordings. The two are mutually exclusive.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := stitch.Options{
			InsertSilence: stitchSilence,
			Crossfade:     stitchCrossfade,
			Normalize:     stitchNormalize,
			TargetPeak:    stitchPeak,
		}
		if err := audedit.StitchAudioFiles(args, opts, stitchOut); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", stitchOut)
		return nil
	},
}

var (
	durationSegments []string
)

var durationCmd = &cobra.Command{
	Use:   "duration <input>...",
	Short: "Report the summed duration of recordings",
	Long: `Report the summed duration of the given recordings. With --segment
flags and a single input, reports instead the duration the input would have
after removing those segments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(durationSegments) > 0 {
			if len(args) != 1 {
				return fmt.Errorf("--segment projection takes exactly one input")
			}
			segs, err := parseSegments(durationSegments)
			if err != nil {
				return err
			}
			d, err := audedit.GetDurationAfterRemoval(args[0], segs)
			if err != nil {
				return err
			}
			cmd.Println(d)
			return nil
		}

		d, err := audedit.GetTotalDuration(args)
		if err != nil {
			return err
		}
		cmd.Println(d)
		return nil
	},
}

func init() {
	removeCmd.Flags().StringArrayVarP(&removeSegments, "segment", "s", nil, "time range to remove (start-end, repeatable)")
	removeCmd.Flags().StringVarP(&removeOut, "output", "o", "", "output WAV path")
	removeCmd.MarkFlagRequired("segment")
	removeCmd.MarkFlagRequired("output")

	muteCmd.Flags().StringArrayVarP(&muteSegments, "segment", "s", nil, "time range to mute (start-end, repeatable)")
	muteCmd.Flags().StringVarP(&muteOut, "output", "o", "", "output WAV path")
	muteCmd.MarkFlagRequired("segment")
	muteCmd.MarkFlagRequired("output")

	splitCmd.Flags().DurationSliceVar(&splitPoints, "at", nil, "split point inside the recording (repeatable)")
	splitCmd.Flags().StringVarP(&splitOutDir, "dir", "d", ".", "output directory")
	splitCmd.Flags().StringVarP(&splitPattern, "pattern", "p", "part_%03d.wav", "output name pattern with one %d verb")
	splitCmd.MarkFlagRequired("at")

	stitchCmd.Flags().StringVarP(&stitchOut, "output", "o", "", "output WAV path")
	stitchCmd.Flags().DurationVar(&stitchSilence, "silence", 0, "silence inserted between recordings")
	stitchCmd.Flags().DurationVar(&stitchCrossfade, "crossfade", 0, "crossfade window between recordings")
	stitchCmd.Flags().BoolVar(&stitchNormalize, "normalize", false, "normalize each recording's peak before joining")
	stitchCmd.Flags().Float64Var(&stitchPeak, "peak", stitch.DefaultTargetPeak, "normalization target peak (0-1]")
	stitchCmd.MarkFlagRequired("output")

	durationCmd.Flags().StringArrayVarP(&durationSegments, "segment", "s", nil, "project duration after removing these ranges")
}
