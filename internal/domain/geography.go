package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FeatureID is a boundary feature id. TopoJSON files store it either as a
// string ("08") or as a number (8).
type FeatureID string

func (f *FeatureID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FeatureID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("feature id: %w", err)
	}
	*f = FeatureID(n.String())
	return nil
}

// GeometryRef is the part of a TopoJSON geometry the dashboard needs.
type GeometryRef struct {
	ID   FeatureID `json:"id"`
	Type string    `json:"type"`
}

// Geography is the US boundary document. Only the bounding box and the state
// feature ids are decoded; the full document is kept for clients that draw it.
type Geography struct {
	BBox   []float64
	States []GeometryRef
	raw    []byte
}

type topology struct {
	Type    string    `json:"type"`
	BBox    []float64 `json:"bbox"`
	Objects struct {
		States struct {
			Geometries []GeometryRef `json:"geometries"`
		} `json:"states"`
	} `json:"objects"`
}

// ParseGeography decodes a TopoJSON topology with a "states" object.
func ParseGeography(data []byte) (*Geography, error) {
	var t topology
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: geography: %v", ErrMalformedInput, err)
	}
	if len(t.BBox) != 4 || t.BBox[2] <= 0 {
		return nil, fmt.Errorf("%w: geography: bbox must hold 4 numbers with a positive width", ErrMalformedInput)
	}
	if len(t.Objects.States.Geometries) == 0 {
		return nil, fmt.Errorf("%w: geography: no states object", ErrMalformedInput)
	}
	return &Geography{
		BBox:   t.BBox,
		States: t.Objects.States.Geometries,
		raw:    data,
	}, nil
}

// Width is the drawing width of the topology in its own units. The map is
// scaled by targetWidth / Width.
func (g *Geography) Width() float64 {
	return g.BBox[2]
}

// Raw returns the document as fetched.
func (g *Geography) Raw() []byte {
	return g.raw
}

// StateIDs lists the state feature ids in document order.
func (g *Geography) StateIDs() []string {
	ids := make([]string, len(g.States))
	for i, s := range g.States {
		ids[i] = strings.TrimSpace(string(s.ID))
	}
	return ids
}
