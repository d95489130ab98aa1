package pstgo

import (
	"context"
	"errors"

	"github.com/placesyntax/pstgo/analysis/attraction"
	"github.com/placesyntax/pstgo/analysis/betweenness"
	"github.com/placesyntax/pstgo/analysis/grouping"
	"github.com/placesyntax/pstgo/analysis/integration"
	"github.com/placesyntax/pstgo/analysis/reach"
	"github.com/placesyntax/pstgo/callback"
	"github.com/placesyntax/pstgo/core"
	"github.com/placesyntax/pstgo/geom"
	"github.com/placesyntax/pstgo/graphbuild"
	"github.com/placesyntax/pstgo/isovist"
	"github.com/placesyntax/pstgo/radius"
	"github.com/placesyntax/pstgo/raster"
	"github.com/placesyntax/pstgo/segmentmap"
	"github.com/placesyntax/pstgo/traverse"
)

// log is the package-level shared log sink every façade function reports
// through (spec.md §6, "RegisterLogCallback/Unregister"); callback.Logger
// already implements the fan-out registry, so the façade only needs one
// shared instance to hand callers handles against.
var log = callback.NewLogger()

// RegisterLogCallback wires fn into the shared log sink and returns a
// handle Unregister can later remove.
func RegisterLogCallback(fn callback.LogFunc) callback.Handle {
	return log.Register(fn)
}

// Unregister removes a previously registered log callback.
func Unregister(h callback.Handle) {
	log.Unregister(h)
}

// TagLimit is one user-supplied radius tag/limit pair, the descriptor-level
// shape of a RadiusMask entry (spec.md §3, "Radius mask"; §6 "RadiusMaskDescriptor").
type TagLimit struct {
	Tag   radius.Tag
	Limit float64
}

// toMask converts a descriptor's flat tag/limit list into a radius.Mask.
func toMask(tags []TagLimit) radius.Mask {
	m := radius.New()
	for _, t := range tags {
		m = m.With(t.Tag, t.Limit)
	}
	return m
}

// GraphDescriptor is spec.md §6's "CreateGraph" input: the raw line,
// unlink, point, and polygon-origin geometry plus build tolerances.
type GraphDescriptor struct {
	Lines         []graphbuild.LineInput `validate:"required,min=1"`
	Unlinks       []geom.Point
	Points        []graphbuild.PointInput
	Polygons      []graphbuild.PolygonInput
	SnapTolerance float64 `validate:"gte=0"`
	PointSearch   float64 `validate:"gte=0"`
}

// CreateGraph builds an axial graph from raw geometry (spec.md §4.B,
// §6 "CreateGraph").
func CreateGraph(desc GraphDescriptor) (*core.AxialGraph, error) {
	if err := validateStruct("CreateGraph", desc); err != nil {
		return nil, err
	}
	var opts []graphbuild.Option
	if desc.SnapTolerance > 0 {
		opts = append(opts, graphbuild.WithSnapTolerance(desc.SnapTolerance))
	}
	if desc.PointSearch > 0 {
		opts = append(opts, graphbuild.WithPointSearchRadius(desc.PointSearch))
	}
	g, err := graphbuild.BuildAxialGraph(desc.Lines, desc.Unlinks, desc.Points, desc.Polygons, opts...)
	if err != nil {
		log.Errorf("CreateGraph", err.Error())
		return nil, wrapErr("CreateGraph", err)
	}
	log.Infof("CreateGraph", "built axial graph")
	return g, nil
}

// GraphInfo is spec.md §6's "GetGraphInfo" output: the graph's entity
// counts, exposed without handing out the graph's internal arena.
type GraphInfo struct {
	LineCount       int
	JunctionCount   int
	PointCount      int
	PointGroupCount int
}

// GetGraphInfo reports g's entity counts.
func GetGraphInfo(g *core.AxialGraph) (GraphInfo, error) {
	if g == nil {
		return GraphInfo{}, wrapErr("GetGraphInfo", traverse.ErrNilGraph)
	}
	return GraphInfo{
		LineCount:       g.LineCount(),
		JunctionCount:   g.JunctionCount(),
		PointCount:      g.PointCount(),
		PointGroupCount: g.PointGroupCount(),
	}, nil
}

// CreateSegmentGraph derives a segment graph from an axial graph (spec.md
// §4.B, §6 "CreateSegmentGraph"): one node per line, edges between lines
// sharing a junction carrying the turn angle.
func CreateSegmentGraph(g *core.AxialGraph) (*core.SegmentGraph, error) {
	if g == nil {
		return nil, wrapErr("CreateSegmentGraph", traverse.ErrNilGraph)
	}
	return graphbuild.BuildSegmentGraph(g), nil
}

// GroupDescriptor is spec.md §6's "CreateSegmentGroupGraph" input.
type GroupDescriptor struct {
	AngleThreshold   float64 `validate:"gte=0"`
	SplitAtJunctions bool
	Color            bool
}

// CreateSegmentGroupGraph quotients a segment graph into groups (spec.md
// §4.D, §6 "CreateSegmentGroupGraph").
func CreateSegmentGroupGraph(seg *core.SegmentGraph, desc GroupDescriptor) (*core.GroupGraph, error) {
	if err := validateStruct("CreateSegmentGroupGraph", desc); err != nil {
		return nil, err
	}
	gg, err := grouping.Group(seg, grouping.Options{
		AngleThreshold:   desc.AngleThreshold,
		SplitAtJunctions: desc.SplitAtJunctions,
		Color:            desc.Color,
	})
	if err != nil {
		return nil, wrapErr("CreateSegmentGroupGraph", err)
	}
	return gg, nil
}

// SegmentMapDescriptor is spec.md §6's "CreateSegmentMap" input.
type SegmentMapDescriptor struct {
	Polylines [][]geom.Point `validate:"required,min=1"`
	Unlinks   []geom.Point
	Snap      float64 `validate:"gte=0"`
	Tail      float64 `validate:"gte=0"`
	Deviation float64 `validate:"gte=0"`
	Extrude   float64 `validate:"gte=0"`
}

// CreateSegmentMap runs the segment-map cleanup pipeline (spec.md §4.E,
// §6 "CreateSegmentMap").
func CreateSegmentMap(desc SegmentMapDescriptor) (segmentmap.Result, error) {
	if err := validateStruct("CreateSegmentMap", desc); err != nil {
		return segmentmap.Result{}, err
	}
	polylines := make([]segmentmap.Polyline, len(desc.Polylines))
	for i, pts := range desc.Polylines {
		polylines[i] = segmentmap.Polyline{Points: pts}
	}
	return segmentmap.Clean(polylines, desc.Unlinks, segmentmap.Config{
		Snap:      desc.Snap,
		Tail:      desc.Tail,
		Deviation: desc.Deviation,
		Extrude:   desc.Extrude,
	}), nil
}

// CreateJunctions reports every degree>=3 junction in g (spec.md §6
// "CreateJunctions"), delegating to the axial graph's own accessor rather
// than recomputing degree here.
func CreateJunctions(g *core.AxialGraph) ([]core.JunctionID, error) {
	if g == nil {
		return nil, wrapErr("CreateJunctions", traverse.ErrNilGraph)
	}
	return g.Junctions3Way(), nil
}

// ReachDescriptor is spec.md §6's "Reach" input.
type ReachDescriptor struct {
	Origins   []core.LineID `validate:"required,min=1"`
	RadiusTag []TagLimit    `validate:"radiusnonempty"`
	Workers   int
}

// Reach runs the Reach analysis over an axial graph (spec.md §4.D, §6
// "Reach").
func Reach(ctx context.Context, g *core.AxialGraph, desc ReachDescriptor) ([]reach.Result, error) {
	if err := validateStruct("Reach", desc); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, wrapErr("Reach", traverse.ErrNilGraph)
	}
	res, err := reach.Run(ctx, g, desc.Origins, reach.Options{Mask: toMask(desc.RadiusTag), Workers: desc.Workers})
	if err != nil {
		return nil, wrapErr("Reach", err)
	}
	return res, nil
}

// IntegrationDescriptor is spec.md §6's "NetworkIntegration" and
// "AngularIntegration" shared input shape.
type IntegrationDescriptor struct {
	RadiusTag []TagLimit
	Workers   int
}

// NetworkIntegration runs Network Integration over an axial graph
// (spec.md §4.D, §6 "NetworkIntegration").
func NetworkIntegration(ctx context.Context, g *core.AxialGraph, origins []core.LineID, desc IntegrationDescriptor) ([]integration.Result, error) {
	if g == nil {
		return nil, wrapErr("NetworkIntegration", traverse.ErrNilGraph)
	}
	res, err := integration.NetworkIntegration(ctx, g, origins, integration.Options{Mask: toMask(desc.RadiusTag), Workers: desc.Workers})
	if err != nil {
		return nil, wrapErr("NetworkIntegration", err)
	}
	return res, nil
}

// AngularIntegration runs Angular Integration over a segment graph
// (spec.md §4.D, §6 "AngularIntegration").
func AngularIntegration(ctx context.Context, g *core.SegmentGraph, origins []core.SegmentID, desc IntegrationDescriptor) ([]integration.Result, error) {
	if g == nil {
		return nil, wrapErr("AngularIntegration", traverse.ErrNilGraph)
	}
	res, err := integration.AngularIntegration(ctx, g, origins, integration.Options{Mask: toMask(desc.RadiusTag), Workers: desc.Workers})
	if err != nil {
		return nil, wrapErr("AngularIntegration", err)
	}
	return res, nil
}

// AngularChoice runs the exact Angular Choice/Betweenness metric (spec.md
// §4.D, §6 "AngularChoice").
func AngularChoice(ctx context.Context, g *core.SegmentGraph, radiusTag []TagLimit) ([]float64, error) {
	if g == nil {
		return nil, wrapErr("AngularChoice", traverse.ErrNilGraph)
	}
	res, err := integration.AngularChoice(ctx, g, toMask(radiusTag))
	if err != nil {
		return nil, wrapErr("AngularChoice", err)
	}
	return res, nil
}

// FastAngularChoice runs the Fast (non-Brandes) Angular Choice variant
// (spec.md §4.D/§9, §6 "FastAngularChoice") -- a distinct analysis from
// AngularChoice, not a substitutable optimization.
func FastAngularChoice(ctx context.Context, g *core.SegmentGraph, radiusTag []TagLimit) ([]float64, error) {
	if g == nil {
		return nil, wrapErr("FastAngularChoice", traverse.ErrNilGraph)
	}
	res, err := integration.FastAngularChoice(ctx, g, toMask(radiusTag))
	if err != nil {
		return nil, wrapErr("FastAngularChoice", err)
	}
	return res, nil
}

// segmentAdapter exposes a core.SegmentGraph as a traverse.Graph ranked
// by whichever tag the caller's RankTag selects, for the façade's
// betweenness entry points (mirrors analysis/integration's own adapter,
// kept local since the façade needs a bare traverse.Graph rather than the
// integration package's {N,TD} reduction).
type segmentAdapter struct{ g *core.SegmentGraph }

func (a segmentAdapter) NodeCount() int { return a.g.SegmentCount() }

func (a segmentAdapter) Edges(n traverse.NodeID) []traverse.Edge {
	edges, err := a.g.Edges(core.SegmentID(n))
	if err != nil {
		return nil
	}
	out := make([]traverse.Edge, 0, len(edges))
	for _, e := range edges {
		length := 0.0
		if line, err := a.g.Axial.Line(core.LineID(e.Other)); err == nil {
			length = line.Length
		}
		cost := radius.Depth{}.
			Set(radius.TagAngular, e.AngleDegrees).
			Set(radius.TagWalking, length).
			Set(radius.TagSteps, 1)
		out = append(out, traverse.Edge{To: traverse.NodeID(e.Other), Cost: cost})
	}
	return out
}

// BetweennessDescriptor is spec.md §6's "SegmentBetweenness" and
// "FastSegmentBetweenness" shared input shape.
type BetweennessDescriptor struct {
	Sources   []core.SegmentID `validate:"required,min=1"`
	RankTag   radius.Tag       `validate:"distancetype"`
	RadiusTag []TagLimit
}

// SegmentBetweenness runs exact Brandes betweenness over a segment graph
// (spec.md §4.D, §6 "SegmentBetweenness").
func SegmentBetweenness(ctx context.Context, g *core.SegmentGraph, desc BetweennessDescriptor) ([]float64, error) {
	if err := validateStruct("SegmentBetweenness", desc); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, wrapErr("SegmentBetweenness", traverse.ErrNilGraph)
	}
	res, err := betweenness.Brandes(ctx, segmentAdapter{g: g}, toMask(desc.RadiusTag), desc.RankTag, toNodeIDs(desc.Sources), nil)
	if err != nil {
		return nil, wrapErr("SegmentBetweenness", err)
	}
	return res, nil
}

// FastSegmentBetweenness runs the Fast non-Brandes betweenness variant
// (spec.md §4.D/§9, §6 "FastSegmentBetweenness").
func FastSegmentBetweenness(ctx context.Context, g *core.SegmentGraph, desc BetweennessDescriptor) ([]float64, error) {
	if err := validateStruct("FastSegmentBetweenness", desc); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, wrapErr("FastSegmentBetweenness", traverse.ErrNilGraph)
	}
	res, err := betweenness.FastSegmentBetweenness(ctx, segmentAdapter{g: g}, toMask(desc.RadiusTag), desc.RankTag, toNodeIDs(desc.Sources))
	if err != nil {
		return nil, wrapErr("FastSegmentBetweenness", err)
	}
	return res, nil
}

func toNodeIDs(ids []core.SegmentID) []traverse.NodeID {
	out := make([]traverse.NodeID, len(ids))
	for i, id := range ids {
		out[i] = traverse.NodeID(id)
	}
	return out
}

// AttractionPoint is spec.md §6's attraction descriptor entry: a node
// already resolved to its graph id (junction/line/segment, analysis-
// dependent), its raw weight, and its polygon-group id (-1 if ungrouped).
type AttractionPoint struct {
	Node  traverse.NodeID
	Value float64
	Group int
}

func toAttractionPoints(pts []AttractionPoint) []attraction.Point {
	out := make([]attraction.Point, len(pts))
	for i, p := range pts {
		out[i] = attraction.Point{Node: p.Node, Value: p.Value, Group: p.Group}
	}
	return out
}

// AttractionDistanceDescriptor is spec.md §6's "AttractionDistance" input.
type AttractionDistanceDescriptor struct {
	Origins     []traverse.NodeID `validate:"required,min=1"`
	Attractions []AttractionPoint `validate:"required,min=1"`
	RankTag     radius.Tag        `validate:"distancetype"`
	RadiusTag   []TagLimit
}

// AttractionDistance runs Attraction Distance over any traverse.Graph
// (spec.md §4.D, §6 "AttractionDistance"); g is typically a
// segmentAdapter or the axial adapter integration/reach already define,
// so this façade takes the interface directly rather than one concrete
// graph type.
func AttractionDistance(ctx context.Context, g traverse.Graph, desc AttractionDistanceDescriptor) ([]float64, error) {
	if err := validateStruct("AttractionDistance", desc); err != nil {
		return nil, err
	}
	res, err := attraction.Distance(ctx, g, toMask(desc.RadiusTag), desc.RankTag, desc.Origins, toAttractionPoints(desc.Attractions))
	if err != nil {
		return nil, wrapErr("AttractionDistance", err)
	}
	return res, nil
}

// AttractionReachDescriptor is spec.md §6's "AttractionReach" input.
type AttractionReachDescriptor struct {
	Origins      []traverse.NodeID `validate:"required,min=1"`
	Attractions  []AttractionPoint `validate:"required,min=1"`
	RankTag      radius.Tag        `validate:"distancetype"`
	RadiusTag    []TagLimit
	WeightFn     attraction.WeightFunc
	WeightParam  float64
	Distribution attraction.DistributionFunc
	Collection   attraction.CollectionFunc
	NormalizeBy  float64
}

// AttractionReach runs Attraction Reach (spec.md §4.D, §6 "AttractionReach").
func AttractionReach(ctx context.Context, g traverse.Graph, desc AttractionReachDescriptor) ([]float64, error) {
	if err := validateStruct("AttractionReach", desc); err != nil {
		return nil, err
	}
	res, err := attraction.Reach(ctx, g, desc.Origins, toAttractionPoints(desc.Attractions), attraction.ReachOptions{
		Mask:         toMask(desc.RadiusTag),
		RankTag:      desc.RankTag,
		WeightFn:     desc.WeightFn,
		WeightParam:  desc.WeightParam,
		Distribution: desc.Distribution,
		Collection:   desc.Collection,
		NormalizeBy:  desc.NormalizeBy,
	})
	if err != nil {
		return nil, wrapErr("AttractionReach", err)
	}
	return res, nil
}

// AttractionBetweennessDescriptor is spec.md §6's "AttractionBetweenness"
// input.
type AttractionBetweennessDescriptor struct {
	Origins     []traverse.NodeID `validate:"required,min=1"`
	Attractions []AttractionPoint `validate:"required,min=1"`
	RankTag     radius.Tag        `validate:"distancetype"`
	RadiusTag   []TagLimit
	Mode        betweenness.DestinationMode
}

// AttractionBetweenness runs Attraction Betweenness (spec.md §4.D, §6
// "AttractionBetweenness").
func AttractionBetweenness(ctx context.Context, g traverse.Graph, desc AttractionBetweennessDescriptor) ([]float64, error) {
	if err := validateStruct("AttractionBetweenness", desc); err != nil {
		return nil, err
	}
	res, err := attraction.Betweenness(ctx, g, toMask(desc.RadiusTag), desc.RankTag, desc.Origins, toAttractionPoints(desc.Attractions), desc.Mode)
	if err != nil {
		return nil, wrapErr("AttractionBetweenness", err)
	}
	return res, nil
}

// ODBetweennessDescriptor is spec.md §6's "ODBetweenness" input: plain
// weighted origin/destination node pairs, no attraction polygon grouping.
type ODBetweennessDescriptor struct {
	Origins      []betweenness.WeightedNode `validate:"required,min=1"`
	Destinations []betweenness.WeightedNode `validate:"required,min=1"`
	RankTag      radius.Tag                 `validate:"distancetype"`
	RadiusTag    []TagLimit
	Mode         betweenness.DestinationMode
}

// ODBetweenness runs OD-Betweenness (spec.md §4.D, §6 "ODBetweenness").
func ODBetweenness(ctx context.Context, g traverse.Graph, desc ODBetweennessDescriptor) ([]float64, error) {
	if err := validateStruct("ODBetweenness", desc); err != nil {
		return nil, err
	}
	res, err := betweenness.ODBetweenness(ctx, g, toMask(desc.RadiusTag), desc.RankTag, desc.Origins, desc.Destinations, desc.Mode)
	if err != nil {
		return nil, wrapErr("ODBetweenness", err)
	}
	return res, nil
}

// SegmentGrouping runs Segment Grouping (spec.md §4.D, §6
// "SegmentGrouping"); it is CreateSegmentGroupGraph under the §6 name the
// analysis table uses, kept as a thin alias so callers can find either
// spelling.
func SegmentGrouping(seg *core.SegmentGraph, desc GroupDescriptor) (*core.GroupGraph, error) {
	return CreateSegmentGroupGraph(seg, desc)
}

// SegmentGroupIntegration runs Segment Group Integration (spec.md §4.D,
// §6 "SegmentGroupIntegration").
func SegmentGroupIntegration(ctx context.Context, gg *core.GroupGraph, desc IntegrationDescriptor) ([]integration.Result, error) {
	if gg == nil {
		return nil, wrapErr("SegmentGroupIntegration", traverse.ErrNilGraph)
	}
	res, err := grouping.GroupIntegration(ctx, gg, integration.Options{Mask: toMask(desc.RadiusTag), Workers: desc.Workers})
	if err != nil {
		return nil, wrapErr("SegmentGroupIntegration", err)
	}
	return res, nil
}

// IsovistDescriptor is spec.md §6's "CreateIsovistContext" input.
type IsovistDescriptor struct {
	Obstacles          [][]geom.Point
	AttractionPoints   []geom.Point
	AttractionPolygons [][]geom.Point
}

// CreateIsovistContext builds the obstacle/attraction index an isovist
// sweep is cast against (spec.md §4.F, §6 "CreateIsovistContext").
func CreateIsovistContext(desc IsovistDescriptor) *isovist.Context {
	return isovist.NewContext(desc.Obstacles, desc.AttractionPoints, desc.AttractionPolygons)
}

// CalculateIsovist casts an isovist ray sweep from opts.Origin (spec.md
// §4.F, §6 "CalculateIsovist").
func CalculateIsovist(ctx *isovist.Context, opts isovist.Options) (isovist.Result, error) {
	if ctx == nil {
		return isovist.Result{}, wrapErr("CalculateIsovist", errors.New("pstgo: isovist context is nil"))
	}
	return isovist.Calculate(ctx, opts), nil
}

// CompareDescriptor is spec.md §6's "CompareResults" input.
type CompareDescriptor struct {
	A, B     []raster.WeightedLine `validate:"required"`
	Sigma    float64               `validate:"gte=0"`
	CellSize float64               `validate:"gt=0"`
	Mode     raster.CompareMode
}

// CompareResults runs the raster-compare pipeline (spec.md §4.G, §6
// "CompareResults").
func CompareResults(desc CompareDescriptor) (raster.CompareResult, error) {
	if err := validateStruct("CompareResults", desc); err != nil {
		return raster.CompareResult{}, err
	}
	res, err := raster.Compare(desc.A, desc.B, desc.Sigma, desc.CellSize, desc.Mode)
	if err != nil {
		return raster.CompareResult{}, wrapErr("CompareResults", err)
	}
	return res, nil
}

// RasterToPolygons vectorizes a compared grid's difference raster into
// per-band polygons (spec.md §4.G step 5, §6 "RasterToPolygons").
func RasterToPolygons(res raster.CompareResult, bands []raster.ThresholdBand, minBlobCells int) []raster.BandPolygons {
	return raster.Vectorize(res.Diff, bands, minBlobCells)
}
