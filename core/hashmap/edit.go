package hashmap

import (
	"fmt"

	apperrors "cloudkitty-hashmap/internal/errors"
)

// MappingEdit tracks local changes to a fetched mapping. The attributes as
// fetched are kept as a snapshot; DirtyFields reports what differs from it.
type MappingEdit struct {
	snapshot map[string]string
	current  Mapping
}

// EditMapping starts tracking changes to m
func EditMapping(m Mapping) *MappingEdit {
	return &MappingEdit{
		snapshot: m.ToDict(),
		current:  m,
	}
}

// Set overwrites one mutable attribute: cost, value, type or group_id
func (e *MappingEdit) Set(attr, value string) error {
	switch attr {
	case "cost":
		cost, err := parseCost(value)
		if err != nil {
			return err
		}
		e.current.Cost = cost
	case "value":
		e.current.Value = value
	case "type":
		e.current.Type = MappingType(value)
	case "group_id":
		e.current.GroupID = value
	default:
		return apperrors.Internal(fmt.Sprintf("mapping attribute %q is not mutable", attr), nil)
	}
	return nil
}

// Mapping returns the mapping with local changes applied
func (e *MappingEdit) Mapping() Mapping {
	return e.current
}

// DirtyFields returns the attributes whose value changed since the snapshot.
// Cost is compared numerically, so "5" and "5.00" are equal.
func (e *MappingEdit) DirtyFields() Payload {
	dirty := make(Payload)
	for attr, now := range e.current.ToDict() {
		if e.snapshot[attr] != now {
			dirty[attr] = now
		}
	}
	return dirty
}
