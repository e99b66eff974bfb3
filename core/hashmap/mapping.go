package hashmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "cloudkitty-hashmap/internal/errors"
	"cloudkitty-hashmap/internal/logging"
)

// missingMappingFilter is reported by hashmap-mapping-list when neither a
// service nor a field was given.
const missingMappingFilter = "Provide either service-id or field-id"

var mappingCreateFields = map[string]string{
	"cost":       "cost",
	"value":      "value",
	"type":       "type",
	"service-id": "service_id",
	"field-id":   "field_id",
	"group-id":   "group_id",
}

var mappingUpdateFields = map[string]string{
	"cost":     "cost",
	"value":    "value",
	"type":     "type",
	"group-id": "group_id",
}

func mappingCommands() []Command {
	return []Command{
		{
			Name:  "hashmap-mapping-create",
			Short: "Create a mapping.",
			Flags: []FlagSpec{
				required("cost", "c", "Mapping cost"),
				optional("value", "v", "Mapping value"),
				optional("type", "t", "Mapping type (flat, rate)"),
				optional("service-id", "s", "Service id"),
				optional("field-id", "f", "Field id"),
				optional("group-id", "g", "Group id"),
			},
			Run: runMappingCreate,
		},
		{
			Name:  "hashmap-mapping-update",
			Short: "Update a mapping.",
			Flags: []FlagSpec{
				required("mapping-id", "m", "Mapping id"),
				optional("cost", "c", "Mapping cost"),
				optional("value", "v", "Mapping value"),
				optional("type", "t", "Mapping type (flat, rate)"),
				optional("group-id", "g", "Group id"),
			},
			Run: runMappingUpdate,
		},
		{
			Name:  "hashmap-mapping-list",
			Short: "List mappings.",
			Flags: []FlagSpec{
				optional("service-id", "s", "Service id"),
				optional("field-id", "f", "Field id"),
				optional("group-id", "g", "Group id"),
			},
			Run: runMappingList,
		},
		{
			Name:  "hashmap-mapping-delete",
			Short: "Delete a mapping.",
			Flags: []FlagSpec{required("mapping-id", "m", "Mapping uuid")},
			Run:   runMappingDelete,
		},
	}
}

func runMappingCreate(ctx context.Context, env Env, args *Args) error {
	if _, err := requireString(args, "cost"); err != nil {
		return err
	}
	fields := MapFields(args, mappingCreateFields)

	logging.Debug("creating mapping", zap.Any("fields", fields))
	out, err := env.Client.Mappings().Create(ctx, fields)
	if err != nil {
		return notFound(err, "Service, field or group", describeTargets(fields))
	}
	logging.Info("mapping created", zap.String("mapping_id", out.MappingID))
	env.Out.PrintDict(out.ToDict())
	return nil
}

func runMappingUpdate(ctx context.Context, env Env, args *Args) error {
	mappingID, err := requireString(args, "mapping-id")
	if err != nil {
		return err
	}
	if v, ok := args.String("cost").Get(); ok {
		if _, err := parseCost(v); err != nil {
			return err
		}
	}

	mapping, err := env.Client.Mappings().Get(ctx, mappingID)
	if err != nil {
		return notFound(err, "Mapping", mappingID)
	}

	edit := EditMapping(*mapping)
	for flag, attr := range mappingUpdateFields {
		if v, ok := args.String(flag).Get(); ok {
			if err := edit.Set(attr, v); err != nil {
				return err
			}
		}
	}

	dirty := edit.DirtyFields()
	if len(dirty) == 0 {
		logging.Debug("mapping unchanged, skipping update", zap.String("mapping_id", mappingID))
		env.Out.PrintDict(mapping.ToDict())
		return nil
	}

	logging.Debug("updating mapping",
		zap.String("mapping_id", mappingID),
		zap.Any("dirty_fields", dirty))
	out, err := env.Client.Mappings().Update(ctx, mappingID, dirty)
	if err != nil {
		return notFound(err, "Mapping", mappingID)
	}
	if out == nil {
		m := edit.Mapping()
		out = &m
	}
	logging.Info("mapping updated",
		zap.String("mapping_id", mappingID),
		zap.Strings("attributes", dirty.Keys()))
	env.Out.PrintDict(out.ToDict())
	return nil
}

func runMappingList(ctx context.Context, env Env, args *Args) error {
	filter := MappingFilter{
		ServiceID: args.String("service-id").OrElse(""),
		FieldID:   args.String("field-id").OrElse(""),
		GroupID:   args.String("group-id").OrElse(""),
	}
	// an empty id would be dropped from the query and list everything
	if filter.ServiceID == "" && filter.FieldID == "" {
		return apperrors.Input(missingMappingFilter)
	}
	mappings, err := env.Client.Mappings().List(ctx, filter)
	if err != nil {
		if filter.FieldID != "" {
			return notFoundIn(err, "Mappings", "field", filter.FieldID)
		}
		return notFoundIn(err, "Mappings", "service", filter.ServiceID)
	}
	env.Out.PrintList(dicts(mappings),
		[]string{"mapping_id", "value", "cost", "type", "field_id", "service_id", "group_id"},
		[]string{"Mapping id", "Value", "Cost", "Type", "Field id", "Service id", "Group id"},
		0)
	return nil
}

func runMappingDelete(ctx context.Context, env Env, args *Args) error {
	mappingID, err := requireString(args, "mapping-id")
	if err != nil {
		return err
	}

	logging.Debug("deleting mapping", zap.String("mapping_id", mappingID))
	if err := env.Client.Mappings().Delete(ctx, mappingID); err != nil {
		return notFound(err, "Mapping", mappingID)
	}
	logging.Info("mapping deleted", zap.String("mapping_id", mappingID))
	return nil
}

func parseCost(v string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, apperrors.Wrapf(apperrors.TypeInput, err, "invalid cost %q", v)
	}
	return cost, nil
}

// describeTargets names the anchors of a mapping payload, e.g. "field_id=F1"
func describeTargets(fields Payload) string {
	var parts []string
	for _, attr := range []string{"service_id", "field_id", "group_id"} {
		if v, ok := fields[attr]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", attr, v))
		}
	}
	return strings.Join(parts, ", ")
}
