package osmnav

import (
	"fmt"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a node or way can't be resolved
	ErrNotFound = errors.New("not found")
	// ErrDataIntegrity is returned when a way references a node which is not part of the network
	ErrDataIntegrity = errors.New("data integrity violation")
	// ErrEmptyNetwork is returned when there are no intersections to snap coordinates onto
	ErrEmptyNetwork = errors.New("network has no intersections")
	// ErrSearchLimit is returned when a search exceeds its expansion budget
	ErrSearchLimit = errors.New("search limit exceeded")
)

// DataIntegrityError describes dangling node reference in some way
type DataIntegrityError struct {
	WayID    osm.WayID
	NodeID   osm.NodeID
	Position int
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("%s: way '%d' references unknown node '%d' at position %d", ErrDataIntegrity, e.WayID, e.NodeID, e.Position)
}

func (e *DataIntegrityError) Unwrap() error {
	return ErrDataIntegrity
}

// Cause makes DataIntegrityError compatible with errors.Cause
func (e *DataIntegrityError) Cause() error {
	return ErrDataIntegrity
}
