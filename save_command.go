package radvis

import (
	"github.com/pkg/errors"
)

// SaveCommand is the payload handed to the remote attribute service for one edge.
// Version is checked by the service for optimistic locking
type SaveCommand struct {
	KanteID  EdgeID             `json:"kanteId"`
	Version  int64              `json:"kantenVersion"`
	Segments []AttributeSegment `json:"segments"`
}

// NewSaveCommand prepares payload for the edge. Segments must tile the edge
func NewSaveCommand(kante *Kante) (*SaveCommand, error) {
	if err := ValidateTiling(kante.Segments); err != nil {
		return nil, errors.Wrapf(err, "Can't save edge %d", kante.ID)
	}
	return &SaveCommand{
		KanteID:  kante.ID,
		Version:  kante.Version,
		Segments: copySegments(kante.Segments),
	}, nil
}
