package diagram

import (
	"github.com/matzehuels/archlayout/pkg/errors"
)

// Validate checks the structural preconditions of a layout pass. It returns
// the first violation as an *errors.Error:
//   - INVALID_INPUT for empty or malformed ids and unknown external types
//   - INVALID_DIMENSIONS for negative sizes
//   - INVALID_COORDINATE for NaN or infinite sizes
//   - DUPLICATE_ID when two nodes share an id
//
// Edge endpoints are not checked here; unresolved endpoints are reported as
// warnings on the Result so the rest of the diagram still lays out.
func (d Diagram) Validate() error {
	seen := make(map[string]string)
	claim := func(kind, id string) error {
		if err := errors.ValidateID(kind, id); err != nil {
			return err
		}
		if prev, ok := seen[id]; ok {
			return errors.New(errors.ErrCodeDuplicateID, "%s id %q already used by a %s", kind, id, prev)
		}
		seen[id] = kind
		return nil
	}
	node := func(kind string, n Node) error {
		if err := claim(kind, n.ID); err != nil {
			return err
		}
		return errors.ValidateSize(kind, n.ID, n.Width, n.Height)
	}

	for _, c := range d.Cells {
		if err := claim("cell", c.ID); err != nil {
			return err
		}
		if c.Dimensions != nil {
			if err := errors.ValidateSize("cell", c.ID, c.Dimensions.Width, c.Dimensions.Height); err != nil {
				return err
			}
		}
		for _, n := range c.Components {
			if err := node("component", n); err != nil {
				return err
			}
		}
		if c.Gateway != nil {
			if err := node("gateway", *c.Gateway); err != nil {
				return err
			}
		}
	}
	for _, e := range d.Externals {
		if err := node("external", e.Node); err != nil {
			return err
		}
		switch e.Type {
		case "", ExternalSystem, ExternalUser:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "external %q has unknown type %q", e.ID, e.Type)
		}
		switch e.Direction {
		case DirectionAuto, DirectionIn, DirectionOut:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "external %q has unknown direction %q", e.ID, e.Direction)
		}
	}
	return nil
}
