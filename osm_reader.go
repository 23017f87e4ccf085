package radvis

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// OSMScanner is common interface of XML and PBF scanners
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// OSMFormat is encoding of OSM data
type OSMFormat uint16

const (
	OSM_XML = OSMFormat(iota + 1)
	OSM_PBF
)

func (iotaIdx OSMFormat) String() string {
	return [...]string{"xml", "pbf"}[iotaIdx-1]
}

// OSMFormatFromFilename guesses format by file extension
func OSMFormatFromFilename(fname string) (OSMFormat, error) {
	if strings.HasSuffix(fname, ".osm.pbf") {
		return OSM_PBF, nil
	}
	switch ext := filepath.Ext(fname); ext {
	case ".osm", ".xml":
		return OSM_XML, nil
	case ".pbf":
		return OSM_PBF, nil
	default:
		return 0, errors.Errorf("File extension '%s' for file '%s' is not handled yet", ext, fname)
	}
}

func newScanner(ctx context.Context, r io.Reader, format OSMFormat) OSMScanner {
	if format == OSM_PBF {
		return osmpbf.New(ctx, r, 4)
	}
	return osmxml.New(ctx, r)
}

// wayData is a filtered OSM way
type wayData struct {
	ID    osm.WayID
	Nodes []osm.NodeID
	attrs Attributes
}

// ReadOSM builds network from OSM file
func ReadOSM(ctx context.Context, fname string, cfg *ImportConfig, logger *zap.Logger) (*Netz, error) {
	format, err := OSMFormatFromFilename(fname)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer file.Close()
	return ReadOSMFrom(ctx, file, format, cfg, logger)
}

// ReadOSMFrom builds network from OSM data. Ways are split into edges at nodes shared by several ways;
// every edge starts with one segment covering [0,1] with attributes taken from tags of the way
func ReadOSMFrom(ctx context.Context, r io.ReadSeeker, format OSMFormat, cfg *ImportConfig, logger *zap.Logger) (*Netz, error) {
	if cfg == nil {
		cfg = DefaultImportConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	/* Process ways */
	st := time.Now()
	ways := []*wayData{}
	nodesUsage := make(map[osm.NodeID]int)
	{
		scannerWays := newScanner(ctx, r, format)
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			if !cfg.CheckTag(way.Tags.Find(cfg.EntityName)) {
				continue
			}
			if len(way.Nodes) < 2 {
				continue
			}
			preparedWay := &wayData{
				ID:    way.ID,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				attrs: cfg.attributesFromTags(way.Tags.Find),
			}
			for i, node := range way.Nodes {
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
				nodesUsage[node.ID]++
				// Ends of way always cut it
				if i == 0 || i == len(way.Nodes)-1 {
					nodesUsage[node.ID]++
				}
			}
			ways = append(ways, preparedWay)
		}
		err := scannerWays.Err()
		scannerWays.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on Ways")
		}
	}
	logger.Info("ways processed", zap.Int("ways", len(ways)), zap.Duration("took", time.Since(st)))

	// Seek to start
	_, err := r.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	points := make(map[osm.NodeID]orb.Point, len(nodesUsage))
	{
		scannerNodes := newScanner(ctx, r, format)
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesUsage[node.ID]; ok {
				points[node.ID] = orb.Point{node.Lon, node.Lat}
			}
		}
		err := scannerNodes.Err()
		scannerNodes.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on Nodes")
		}
	}
	logger.Info("nodes processed", zap.Int("nodes", len(points)), zap.Duration("took", time.Since(st)))

	netz := NewNetz()
	nextID := EdgeID(1)
	for _, way := range ways {
		pieces, missing, ok := cutWay(way, points, nodesUsage)
		if !ok {
			logger.Warn("way references unknown node, skipping whole way", zap.Int64("way_id", int64(way.ID)), zap.Int64("node_id", int64(missing)))
			continue
		}
		for _, piece := range pieces {
			netz.addKante(nextID, piece.von, piece.nach, piece.geom, way.attrs.Clone())
			nextID++
		}
	}
	logger.Info("network prepared", zap.Int("kanten", len(netz.Kanten)), zap.Int("knoten", len(netz.Knoten)))
	return netz, nil
}

// wayPiece is a part of way between two cutting nodes
type wayPiece struct {
	von  KnotenID
	nach KnotenID
	geom orb.LineString
}

// cutWay splits way at nodes used more than once. Returns id of the first unknown node and false
// if geometry of the way can't be resolved completely
func cutWay(way *wayData, points map[osm.NodeID]orb.Point, nodesUsage map[osm.NodeID]int) ([]wayPiece, osm.NodeID, bool) {
	pieces := []wayPiece{}
	geom := orb.LineString{}
	vonKnoten := way.Nodes[0]
	for i, nodeID := range way.Nodes {
		pt, ok := points[nodeID]
		if !ok {
			return nil, nodeID, false
		}
		geom = append(geom, pt)
		if i == 0 || nodesUsage[nodeID] < 2 {
			continue
		}
		pieces = append(pieces, wayPiece{von: KnotenID(vonKnoten), nach: KnotenID(nodeID), geom: geom})
		geom = orb.LineString{pt}
		vonKnoten = nodeID
	}
	return pieces, 0, true
}
