// Package hashmap - Commands for the CloudKitty hashmap rating module
// Services own fields, mappings price a service, a field value or a group.
package hashmap

import (
	"github.com/shopspring/decimal"
)

// MappingType is how a mapping cost is applied
type MappingType string

const (
	// MappingFlat charges the cost once per matching usage record
	MappingFlat MappingType = "flat"

	// MappingRate multiplies the usage quantity by the cost
	MappingRate MappingType = "rate"
)

// Service is a top-level rating category
type Service struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
}

// ToDict returns every attribute keyed by its API name
func (s Service) ToDict() map[string]string {
	return map[string]string{
		"service_id": s.ServiceID,
		"name":       s.Name,
	}
}

// Field is a rating dimension of exactly one service
type Field struct {
	FieldID   string `json:"field_id"`
	Name      string `json:"name"`
	ServiceID string `json:"service_id"`
}

// ToDict returns every attribute keyed by its API name
func (f Field) ToDict() map[string]string {
	return map[string]string{
		"field_id":   f.FieldID,
		"name":       f.Name,
		"service_id": f.ServiceID,
	}
}

// Group associates mappings independently of services
type Group struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
}

// ToDict returns every attribute keyed by its API name
func (g Group) ToDict() map[string]string {
	return map[string]string{
		"group_id": g.GroupID,
		"name":     g.Name,
	}
}

// Mapping prices a service or a field value. Exactly one of FieldID and
// ServiceID is set by the server; GroupID is optional.
type Mapping struct {
	MappingID string          `json:"mapping_id"`
	Value     string          `json:"value"`
	Cost      decimal.Decimal `json:"cost"`
	Type      MappingType     `json:"type"`
	FieldID   string          `json:"field_id"`
	ServiceID string          `json:"service_id"`
	GroupID   string          `json:"group_id"`
}

// ToDict returns every attribute keyed by its API name
func (m Mapping) ToDict() map[string]string {
	return map[string]string{
		"mapping_id": m.MappingID,
		"value":      m.Value,
		"cost":       m.Cost.String(),
		"type":       string(m.Type),
		"field_id":   m.FieldID,
		"service_id": m.ServiceID,
		"group_id":   m.GroupID,
	}
}

func dicts[T interface{ ToDict() map[string]string }](items []T) []map[string]string {
	rows := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, item.ToDict())
	}
	return rows
}
