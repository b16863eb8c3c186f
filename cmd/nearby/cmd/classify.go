package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/urbanform/nearby/internal/classify"
	"github.com/urbanform/nearby/internal/layer"
	"github.com/urbanform/nearby/internal/output"
)

func newClassifyCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "classify <buildings.geojson>",
		Short: "Label building footprints by land use",
		Long: `Classify labels every building footprint Residential, Non Residential,
or Mixed from its precomputed morphological attributes (frontage ratio,
compactness, area, corners, elongation, street context) and writes the
label back as a "prediction" attribute.

Examples:
  nearby classify buildings.geojson -o labeled.geojson
  nearby classify buildings.geojson > labeled.geojson`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args[0], outPath)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output GeoJSON path (default: stdout)")

	return cmd
}

func runClassify(cmd *cobra.Command, path, outPath string) error {
	out := output.New(cmd.ErrOrStderr())

	l, err := layer.LoadFile(path)
	if err != nil {
		return err
	}

	slog.Info("classify_started",
		slog.String("input", path),
		slog.Int("features", l.Len()))

	labeled, err := classify.Apply(l)
	if err != nil {
		return err
	}

	counts := map[classify.Label]int{}
	for _, f := range labeled.Features() {
		if v, ok := f.Attrs.Get(classify.AttrPrediction); ok {
			if s, isStr := v.(string); isStr {
				counts[classify.Label(s)]++
			}
		}
	}

	if outPath == "" {
		data, err := layer.WriteGeoJSON(labeled)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	if err := layer.SaveFile(labeled, outPath); err != nil {
		return err
	}
	out.Successf("classified %d features", labeled.Len())
	for _, label := range []classify.Label{classify.Residential, classify.NonResidential, classify.Mixed} {
		if n := counts[label]; n > 0 {
			out.Dimf("%s: %d", label, n)
		}
	}
	out.Dimf("wrote %s", outPath)
	return nil
}
