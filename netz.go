package radvis

import (
	"sort"

	"github.com/LdDl/ch"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Netz is the bicycle network: edges with their attribute segments and nodes
type Netz struct {
	Kanten map[EdgeID]*Kante
	Knoten map[KnotenID]*Knoten
}

// NewNetz returns empty network
func NewNetz() *Netz {
	return &Netz{
		Kanten: make(map[EdgeID]*Kante),
		Knoten: make(map[KnotenID]*Knoten),
	}
}

// AddKante adds edge and its end nodes. Edge without segments gets one segment covering [0,1]
func (netz *Netz) AddKante(kante *Kante) error {
	if len(kante.Geometry) < 2 {
		return errors.Errorf("Edge %d has less than 2 points", kante.ID)
	}
	if _, ok := netz.Kanten[kante.ID]; ok {
		return errors.Errorf("Edge %d already exists", kante.ID)
	}
	if len(kante.Segments) == 0 {
		kante.Segments = []AttributeSegment{WholeEdgeSegment(Attributes{})}
	}
	if err := ValidateTiling(kante.Segments); err != nil {
		return errors.Wrapf(err, "Edge %d", kante.ID)
	}
	netz.Kanten[kante.ID] = kante
	netz.ensureKnoten(kante.VonKnotenID, kante.Geometry[0])
	netz.ensureKnoten(kante.NachKnotenID, kante.Geometry[len(kante.Geometry)-1])
	return nil
}

func (netz *Netz) addKante(id EdgeID, von, nach KnotenID, geom orb.LineString, attrs Attributes) {
	netz.Kanten[id] = &Kante{
		ID:           id,
		VonKnotenID:  von,
		NachKnotenID: nach,
		Geometry:     geom,
		Segments:     []AttributeSegment{WholeEdgeSegment(attrs)},
	}
	netz.ensureKnoten(von, geom[0])
	netz.ensureKnoten(nach, geom[len(geom)-1])
}

func (netz *Netz) ensureKnoten(id KnotenID, pt orb.Point) {
	if _, ok := netz.Knoten[id]; !ok {
		netz.Knoten[id] = &Knoten{ID: id, Point: pt}
	}
}

// KantenIDs returns sorted edge identifiers
func (netz *Netz) KantenIDs() []EdgeID {
	ids := make([]EdgeID, 0, len(netz.Kanten))
	for id := range netz.Kanten {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortedKanten returns edges ordered by identifier
func (netz *Netz) SortedKanten() []*Kante {
	ids := netz.KantenIDs()
	kanten := make([]*Kante, len(ids))
	for i, id := range ids {
		kanten[i] = netz.Kanten[id]
	}
	return kanten
}

type knotenPair struct {
	from KnotenID
	to   KnotenID
}

// RouteSelection returns edges along the shortest path between two nodes.
// Edges are traversable in both directions. Shortest path is found on contraction hierarchies
func (netz *Netz) RouteSelection(from, to KnotenID) ([]EdgeID, error) {
	if _, ok := netz.Knoten[from]; !ok {
		return nil, errors.Errorf("Node %d not found", from)
	}
	if _, ok := netz.Knoten[to]; !ok {
		return nil, errors.Errorf("Node %d not found", to)
	}
	if from == to {
		return []EdgeID{}, nil
	}

	// Cheapest edge per ordered pair of nodes
	cheapest := make(map[knotenPair]*Kante)
	for _, kante := range netz.SortedKanten() {
		if kante.VonKnotenID == kante.NachKnotenID {
			continue
		}
		for _, pair := range []knotenPair{{kante.VonKnotenID, kante.NachKnotenID}, {kante.NachKnotenID, kante.VonKnotenID}} {
			if current, ok := cheapest[pair]; !ok || kante.LengthMeters() < current.LengthMeters() {
				cheapest[pair] = kante
			}
		}
	}

	graph := ch.Graph{}
	for id := range netz.Knoten {
		if err := graph.CreateVertex(int64(id)); err != nil {
			return nil, errors.Wrap(err, "Can not create vertex")
		}
	}
	for pair, kante := range cheapest {
		if err := graph.AddEdge(int64(pair.from), int64(pair.to), kante.LengthMeters()); err != nil {
			return nil, errors.Wrap(err, "Can not wrap source and target vertices as edge")
		}
	}
	graph.PrepareContractionHierarchies()

	cost, path := graph.ShortestPath(int64(from), int64(to))
	if cost < 0 || len(path) < 2 {
		return nil, errors.Errorf("No route between nodes %d and %d", from, to)
	}
	result := make([]EdgeID, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		kante, ok := cheapest[knotenPair{KnotenID(path[i-1]), KnotenID(path[i])}]
		if !ok {
			return nil, errors.Errorf("Route step %d -> %d has no edge", path[i-1], path[i])
		}
		result = append(result, kante.ID)
	}
	return result, nil
}

// SelectedSegments returns segments of given edges at indices held by selection.
// Edges without selected segment contribute all of their segments
func (netz *Netz) SelectedSegments(edges []EdgeID, selection *Selection) ([]*AttributeSegment, error) {
	result := []*AttributeSegment{}
	for _, id := range edges {
		kante, ok := netz.Kanten[id]
		if !ok {
			return nil, errors.Errorf("Edge %d not found", id)
		}
		idx, selected := 0, false
		if selection != nil {
			idx, selected = selection.Selected(id)
		}
		if !selected {
			for i := range kante.Segments {
				result = append(result, &kante.Segments[i])
			}
			continue
		}
		if idx < 0 || idx >= len(kante.Segments) {
			return nil, errors.Wrapf(ErrInvariantViolation, "selected segment %d of edge %d does not exist", idx, id)
		}
		result = append(result, &kante.Segments[idx])
	}
	return result, nil
}
