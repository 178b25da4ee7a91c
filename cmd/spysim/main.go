// Command spysim replays scroll positions against the portfolio's section
// layout and prints which nav item would be highlighted.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/viditpawar/portfolio/internal/content"
	"github.com/viditpawar/portfolio/internal/scrollspy"
)

type options struct {
	heights  []float64
	viewport float64
	bias     float64
	target   string
	verbose  bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "spysim [scroll positions...]",
		Short: "Simulate scroll-spy highlighting over the portfolio sections",
		Example: "  spysim 0 750 1600 4800\n" +
			"  spysim --heights 900,600,1200,1400,1100,500,700 --goto projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := make([]float64, 0, len(args))
			for _, a := range args {
				y, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return fmt.Errorf("scroll position %q: %w", a, err)
				}
				positions = append(positions, y)
			}
			return run(out, opts, positions)
		},
		SilenceUsage: true,
	}
	cmd.Flags().Float64SliceVar(&opts.heights, "heights", []float64{800, 800, 800, 800, 800, 800, 800}, "section heights in document order")
	cmd.Flags().Float64Var(&opts.viewport, "viewport", 800, "viewport height")
	cmd.Flags().Float64Var(&opts.bias, "bias", scrollspy.DefaultBias, "lookahead added to the scroll offset")
	cmd.Flags().StringVar(&opts.target, "goto", "", "smooth-scroll to this section after replaying positions")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log tracker internals")
	return cmd
}

func run(out io.Writer, opts options, positions []float64) error {
	sections := content.SectionIDs()
	if len(opts.heights) != len(sections) {
		return fmt.Errorf("need %d heights, got %d", len(sections), len(opts.heights))
	}

	log := zerolog.Nop()
	if opts.verbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	}

	layout := scrollspy.NewStackedLayout(sections, opts.heights)
	vp := scrollspy.NewSimViewport(layout.Height() - opts.viewport)
	tracker, err := scrollspy.New(sections, layout, vp, scrollspy.WithBias(opts.bias), scrollspy.WithLogger(log))
	if err != nil {
		return err
	}

	sub := tracker.Mount(vp)
	defer sub.Unsubscribe()
	cancel := tracker.OnChange(func(id scrollspy.SectionID) {
		fmt.Fprintf(out, "  -> %s (scrollY=%.0f)\n", id, vp.ScrollY())
	})
	defer cancel()

	fmt.Fprintf(out, "active: %s\n", tracker.Active())
	for _, y := range positions {
		fmt.Fprintf(out, "scroll %.0f\n", y)
		vp.Jump(y)
	}

	if opts.target != "" {
		id := scrollspy.SectionID(strings.ToLower(opts.target))
		if !tracker.Navigate(id) {
			fmt.Fprintf(out, "goto %s: no such section\n", id)
		} else {
			fmt.Fprintf(out, "goto %s\n", id)
			fmt.Fprintf(out, "settled at %.0f\n", vp.Settle())
		}
	}

	fmt.Fprintf(out, "active: %s\n", tracker.Active())
	return nil
}
