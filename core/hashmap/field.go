package hashmap

import (
	"context"

	"go.uber.org/zap"

	"cloudkitty-hashmap/internal/logging"
)

func fieldCommands() []Command {
	return []Command{
		{
			Name:  "hashmap-field-create",
			Short: "Create a field.",
			Flags: []FlagSpec{
				required("name", "n", "Field name"),
				required("service-id", "s", "Service id"),
			},
			Run: runFieldCreate,
		},
		{
			Name:  "hashmap-field-list",
			Short: "List fields of a service.",
			Flags: []FlagSpec{required("service-id", "s", "Service id")},
			Run:   runFieldList,
		},
		{
			Name:  "hashmap-field-delete",
			Short: "Delete a field.",
			Flags: []FlagSpec{required("field-id", "f", "Field uuid")},
			Run:   runFieldDelete,
		},
	}
}

func runFieldCreate(ctx context.Context, env Env, args *Args) error {
	if _, err := requireString(args, "name"); err != nil {
		return err
	}
	serviceID, err := requireString(args, "service-id")
	if err != nil {
		return err
	}
	fields := MapFields(args, map[string]string{
		"name":       "name",
		"service-id": "service_id",
	})

	logging.Debug("creating field", zap.Any("fields", fields))
	out, err := env.Client.Fields().Create(ctx, fields)
	if err != nil {
		return notFound(err, "Service", serviceID)
	}
	logging.Info("field created",
		zap.String("field_id", out.FieldID),
		zap.String("service_id", serviceID))
	env.Out.PrintDict(out.ToDict())
	return nil
}

func runFieldList(ctx context.Context, env Env, args *Args) error {
	serviceID, err := requireString(args, "service-id")
	if err != nil {
		return err
	}

	fields, err := env.Client.Fields().List(ctx, serviceID)
	if err != nil {
		return notFoundIn(err, "Fields", "service", serviceID)
	}
	env.Out.PrintList(dicts(fields),
		[]string{"name", "field_id"},
		[]string{"Name", "Field id"},
		0)
	return nil
}

func runFieldDelete(ctx context.Context, env Env, args *Args) error {
	fieldID, err := requireString(args, "field-id")
	if err != nil {
		return err
	}

	logging.Debug("deleting field", zap.String("field_id", fieldID))
	if err := env.Client.Fields().Delete(ctx, fieldID); err != nil {
		return notFound(err, "Field", fieldID)
	}
	logging.Info("field deleted", zap.String("field_id", fieldID))
	return nil
}
