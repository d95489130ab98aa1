package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
	"github.com/placesyntax/pstgo/graphbuild"
	"github.com/placesyntax/pstgo/isovist"
	"github.com/placesyntax/pstgo/pstgo"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/raster"
)

// radiusTagYAML and graphFile mirror the pstgo façade's descriptor
// structs in a YAML-friendly shape, the same config-file loading
// pattern the teacher CLI uses for its own deployment settings.
type graphFile struct {
	Lines         []struct{ A, B geom.Point } `yaml:"lines"`
	Unlinks       []geom.Point                `yaml:"unlinks"`
	SnapTolerance float64                     `yaml:"snap_tolerance"`
	PointSearch   float64                     `yaml:"point_search"`
}

type radiusTagYAML struct {
	Tag   radius.Tag `yaml:"tag"`
	Limit float64    `yaml:"limit"`
}

func loadGraphFile(path string) (*core.AxialGraph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gf graphFile
	if err := yaml.Unmarshal(raw, &gf); err != nil {
		return nil, err
	}
	lines := make([]graphbuild.LineInput, len(gf.Lines))
	for i, l := range gf.Lines {
		lines[i] = graphbuild.LineInput{A: l.A, B: l.B}
	}
	return pstgo.CreateGraph(pstgo.GraphDescriptor{
		Lines:         lines,
		Unlinks:       gf.Unlinks,
		SnapTolerance: gf.SnapTolerance,
		PointSearch:   gf.PointSearch,
	})
}

func toTagLimits(tags []radiusTagYAML) []pstgo.TagLimit {
	out := make([]pstgo.TagLimit, len(tags))
	for i, t := range tags {
		out[i] = pstgo.TagLimit{Tag: t.Tag, Limit: t.Limit}
	}
	return out
}

var rootCmd = &cobra.Command{
	Use:   "pstgo",
	Short: "Place Syntax Tool spatial network analytics",
	Long: `pstgo builds axial and segment graphs from line geometry and runs
the spec's integration, betweenness, reach, attraction, isovist, and
raster-comparison analyses over them.`,
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect an axial graph built from a geometry descriptor",
}

var graphInfoCmd = &cobra.Command{
	Use:   "info [descriptor.yaml]",
	Short: "Build the axial graph and print its entity counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraphFile(args[0])
		if err != nil {
			return err
		}
		info, err := pstgo.GetGraphInfo(g)
		if err != nil {
			return err
		}
		fmt.Printf("lines=%d junctions=%d points=%d pointGroups=%d\n",
			info.LineCount, info.JunctionCount, info.PointCount, info.PointGroupCount)
		return nil
	},
}

var graphJunctionsCmd = &cobra.Command{
	Use:   "junctions [descriptor.yaml]",
	Short: "List every degree>=3 junction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraphFile(args[0])
		if err != nil {
			return err
		}
		junctions, err := pstgo.CreateJunctions(g)
		if err != nil {
			return err
		}
		fmt.Println(junctions)
		return nil
	},
}

type reachFile struct {
	Origins []int           `yaml:"origins"`
	Radius  []radiusTagYAML `yaml:"radius"`
	Workers int             `yaml:"workers"`
}

var reachCmd = &cobra.Command{
	Use:   "reach [graph.yaml] [reach.yaml]",
	Short: "Run Reach over an axial graph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraphFile(args[0])
		if err != nil {
			return err
		}
		var rf reachFile
		if err := readYAML(args[1], &rf); err != nil {
			return err
		}
		origins := make([]core.LineID, len(rf.Origins))
		for i, o := range rf.Origins {
			origins[i] = core.LineID(o)
		}
		results, err := pstgo.Reach(context.Background(), g, pstgo.ReachDescriptor{
			Origins:   origins,
			RadiusTag: toTagLimits(rf.Radius),
			Workers:   rf.Workers,
		})
		if err != nil {
			return err
		}
		for i, r := range results {
			fmt.Printf("origin=%d count=%d length=%.4f area=%.4f\n", rf.Origins[i], r.Count, r.Length, r.Area)
		}
		return nil
	},
}

type integrationFile struct {
	Origins []int           `yaml:"origins"`
	Radius  []radiusTagYAML `yaml:"radius"`
	Workers int             `yaml:"workers"`
}

var integrationCmd = &cobra.Command{
	Use:   "integration",
	Short: "Run Network or Angular Integration",
}

var integrationNetworkCmd = &cobra.Command{
	Use:   "network [graph.yaml] [integration.yaml]",
	Short: "Run Network Integration over an axial graph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraphFile(args[0])
		if err != nil {
			return err
		}
		var inf integrationFile
		if err := readYAML(args[1], &inf); err != nil {
			return err
		}
		origins := make([]core.LineID, len(inf.Origins))
		for i, o := range inf.Origins {
			origins[i] = core.LineID(o)
		}
		results, err := pstgo.NetworkIntegration(context.Background(), g, origins, pstgo.IntegrationDescriptor{
			RadiusTag: toTagLimits(inf.Radius),
			Workers:   inf.Workers,
		})
		if err != nil {
			return err
		}
		for i, r := range results {
			fmt.Printf("origin=%d N=%d TD=%.4f\n", inf.Origins[i], r.N, r.TD)
		}
		return nil
	},
}

var integrationAngularCmd = &cobra.Command{
	Use:   "angular [graph.yaml] [integration.yaml]",
	Short: "Run Angular Integration over the graph's derived segment graph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraphFile(args[0])
		if err != nil {
			return err
		}
		seg, err := pstgo.CreateSegmentGraph(g)
		if err != nil {
			return err
		}
		var inf integrationFile
		if err := readYAML(args[1], &inf); err != nil {
			return err
		}
		origins := make([]core.SegmentID, len(inf.Origins))
		for i, o := range inf.Origins {
			origins[i] = core.SegmentID(o)
		}
		results, err := pstgo.AngularIntegration(context.Background(), seg, origins, pstgo.IntegrationDescriptor{
			RadiusTag: toTagLimits(inf.Radius),
			Workers:   inf.Workers,
		})
		if err != nil {
			return err
		}
		for i, r := range results {
			fmt.Printf("segment=%d N=%d TD=%.4f\n", inf.Origins[i], r.N, r.TD)
		}
		return nil
	},
}

var fastChoice bool

var choiceCmd = &cobra.Command{
	Use:   "choice [graph.yaml]",
	Short: "Run Angular Choice (exact Brandes, or --fast for the non-Brandes variant) over the graph's segment graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGraphFile(args[0])
		if err != nil {
			return err
		}
		seg, err := pstgo.CreateSegmentGraph(g)
		if err != nil {
			return err
		}
		var scores []float64
		if fastChoice {
			scores, err = pstgo.FastAngularChoice(context.Background(), seg, nil)
		} else {
			scores, err = pstgo.AngularChoice(context.Background(), seg, nil)
		}
		if err != nil {
			return err
		}
		for i, s := range scores {
			fmt.Printf("segment=%d choice=%.4f\n", i, s)
		}
		return nil
	},
}

type isovistFile struct {
	Obstacles             [][]geom.Point `yaml:"obstacles"`
	AttractionPoints      []geom.Point   `yaml:"attraction_points"`
	AttractionPolygons    [][]geom.Point `yaml:"attraction_polygons"`
	Origin                geom.Point     `yaml:"origin"`
	Radius                float64        `yaml:"radius"`
	FOVDegrees            float64        `yaml:"fov_degrees"`
	LookDirectionDegrees  float64        `yaml:"look_direction_degrees"`
	PerimeterSegmentCount int            `yaml:"perimeter_segment_count"`
}

var isovistCmd = &cobra.Command{
	Use:   "isovist [descriptor.yaml]",
	Short: "Calculate one isovist from a descriptor file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var isf isovistFile
		if err := readYAML(args[0], &isf); err != nil {
			return err
		}
		ivCtx := pstgo.CreateIsovistContext(pstgo.IsovistDescriptor{
			Obstacles:          isf.Obstacles,
			AttractionPoints:   isf.AttractionPoints,
			AttractionPolygons: isf.AttractionPolygons,
		})
		res, err := pstgo.CalculateIsovist(ivCtx, isovist.Options{
			Origin:                isf.Origin,
			Radius:                isf.Radius,
			FOVDegrees:            isf.FOVDegrees,
			LookDirectionDegrees:  isf.LookDirectionDegrees,
			PerimeterSegmentCount: isf.PerimeterSegmentCount,
		})
		if err != nil {
			return err
		}
		fmt.Printf("area=%.4f vertices=%d obstacleHits=%v attractionPointHits=%v\n",
			res.Area, len(res.Polygon), res.ObstacleHits, res.AttractionPointHits)
		return nil
	},
}

type rasterLinesFile struct {
	Lines []struct {
		A, B  geom.Point
		Value float64
	} `yaml:"lines"`
}

var (
	rasterSigma    float64
	rasterCellSize float64
)

var rasterCompareCmd = &cobra.Command{
	Use:   "raster-compare [a.yaml] [b.yaml]",
	Short: "Rasterize, blur, and difference two weighted line sets",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadRasterLines(args[0])
		if err != nil {
			return err
		}
		b, err := loadRasterLines(args[1])
		if err != nil {
			return err
		}
		res, err := pstgo.CompareResults(pstgo.CompareDescriptor{
			A: a, B: b, Sigma: rasterSigma, CellSize: rasterCellSize, Mode: raster.RelativeToCell,
		})
		if err != nil {
			return err
		}
		rows, cols := res.Diff.Dims()
		fmt.Printf("diff grid %dx%d cells\n", rows, cols)
		return nil
	},
}

func loadRasterLines(path string) ([]raster.WeightedLine, error) {
	var rf rasterLinesFile
	if err := readYAML(path, &rf); err != nil {
		return nil, err
	}
	out := make([]raster.WeightedLine, len(rf.Lines))
	for i, l := range rf.Lines {
		out[i] = raster.WeightedLine{A: l.A, B: l.B, Value: l.Value}
	}
	return out, nil
}

func readYAML(path string, out interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, out)
}

func init() {
	choiceCmd.Flags().BoolVar(&fastChoice, "fast", false, "use the Fast non-Brandes Angular Choice variant")
	rasterCompareCmd.Flags().Float64Var(&rasterSigma, "sigma", 1, "gaussian blur sigma")
	rasterCompareCmd.Flags().Float64Var(&rasterCellSize, "cell-size", 1, "raster cell size")

	graphCmd.AddCommand(graphInfoCmd, graphJunctionsCmd)
	integrationCmd.AddCommand(integrationNetworkCmd, integrationAngularCmd)
	rootCmd.AddCommand(graphCmd, reachCmd, integrationCmd, choiceCmd, isovistCmd, rasterCompareCmd)
}
