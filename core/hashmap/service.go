package hashmap

import (
	"context"

	"go.uber.org/zap"

	apperrors "cloudkitty-hashmap/internal/errors"
	"cloudkitty-hashmap/internal/logging"
)

func serviceCommands() []Command {
	return []Command{
		{
			Name:  "hashmap-service-create",
			Short: "Create a service.",
			Flags: []FlagSpec{required("name", "n", "Service name")},
			Run:   runServiceCreate,
		},
		{
			Name:  "hashmap-service-list",
			Short: "List services.",
			Run:   runServiceList,
		},
		{
			Name:  "hashmap-service-delete",
			Short: "Delete a service.",
			Flags: []FlagSpec{required("service-id", "s", "Service uuid")},
			Run:   runServiceDelete,
		},
	}
}

func runServiceCreate(ctx context.Context, env Env, args *Args) error {
	if _, err := requireString(args, "name"); err != nil {
		return err
	}
	fields := MapFields(args, map[string]string{
		"name": "name",
	})

	logging.Debug("creating service", zap.Any("fields", fields))
	out, err := env.Client.Services().Create(ctx, fields)
	if err != nil {
		return notFound(err, "Service", "")
	}
	logging.Info("service created", zap.String("service_id", out.ServiceID))
	env.Out.PrintDict(out.ToDict())
	return nil
}

func runServiceList(ctx context.Context, env Env, _ *Args) error {
	services, err := env.Client.Services().List(ctx)
	if err != nil {
		return notFound(err, "Services", "")
	}
	env.Out.PrintList(dicts(services),
		[]string{"name", "service_id"},
		[]string{"Name", "Service id"},
		0)
	return nil
}

func runServiceDelete(ctx context.Context, env Env, args *Args) error {
	serviceID, err := requireString(args, "service-id")
	if err != nil {
		return err
	}

	logging.Debug("deleting service", zap.String("service_id", serviceID))
	if err := env.Client.Services().Delete(ctx, serviceID); err != nil {
		return notFound(err, "Service", serviceID)
	}
	logging.Info("service deleted", zap.String("service_id", serviceID))
	return nil
}

// requireString returns a flag the command cannot run without
func requireString(args *Args, name string) (string, error) {
	v, ok := args.String(name).Get()
	if !ok {
		return "", apperrors.Newf(apperrors.TypeInput, "missing required flag --%s", name)
	}
	return v, nil
}
