package hashmap

import (
	"context"
	"errors"
)

// ErrNotFound is wrapped by client errors when the rating service reports
// that the requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// MappingFilter narrows a mapping listing. Empty fields are not sent.
type MappingFilter struct {
	ServiceID string
	FieldID   string
	GroupID   string
}

// DeleteGroupOptions controls group deletion
type DeleteGroupOptions struct {
	// Recursive also deletes the mappings attached to the group
	Recursive bool
}

// ServiceAPI manages services
type ServiceAPI interface {
	Create(ctx context.Context, fields Payload) (*Service, error)
	List(ctx context.Context) ([]Service, error)
	Delete(ctx context.Context, serviceID string) error
}

// FieldAPI manages fields
type FieldAPI interface {
	Create(ctx context.Context, fields Payload) (*Field, error)
	List(ctx context.Context, serviceID string) ([]Field, error)
	Delete(ctx context.Context, fieldID string) error
}

// MappingAPI manages mappings
type MappingAPI interface {
	Create(ctx context.Context, fields Payload) (*Mapping, error)
	List(ctx context.Context, filter MappingFilter) ([]Mapping, error)
	Get(ctx context.Context, mappingID string) (*Mapping, error)
	// Update returns a nil mapping when the service does not echo it back
	Update(ctx context.Context, mappingID string, fields Payload) (*Mapping, error)
	Delete(ctx context.Context, mappingID string) error
}

// GroupAPI manages groups
type GroupAPI interface {
	Create(ctx context.Context, fields Payload) (*Group, error)
	List(ctx context.Context) ([]Group, error)
	Delete(ctx context.Context, groupID string, opts DeleteGroupOptions) error
}

// Client is the hashmap module of the rating service
type Client interface {
	Services() ServiceAPI
	Fields() FieldAPI
	Mappings() MappingAPI
	Groups() GroupAPI
}
