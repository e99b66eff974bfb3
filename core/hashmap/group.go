package hashmap

import (
	"context"

	"go.uber.org/zap"

	"cloudkitty-hashmap/internal/logging"
)

func groupCommands() []Command {
	return []Command{
		{
			Name:  "hashmap-group-create",
			Short: "Create a group.",
			Flags: []FlagSpec{required("name", "n", "Group name")},
			Run:   runGroupCreate,
		},
		{
			Name:  "hashmap-group-list",
			Short: "List groups.",
			Run:   runGroupList,
		},
		{
			Name:  "hashmap-group-delete",
			Short: "Delete a group.",
			Flags: []FlagSpec{
				required("group-id", "g", "Group uuid"),
				{Name: "recursive", Short: "r", Help: "Delete the group's mappings", Kind: FlagBool, Default: "false"},
			},
			Run: runGroupDelete,
		},
	}
}

func runGroupCreate(ctx context.Context, env Env, args *Args) error {
	if _, err := requireString(args, "name"); err != nil {
		return err
	}
	fields := MapFields(args, map[string]string{
		"name": "name",
	})

	logging.Debug("creating group", zap.Any("fields", fields))
	out, err := env.Client.Groups().Create(ctx, fields)
	if err != nil {
		return notFound(err, "Group", "")
	}
	logging.Info("group created", zap.String("group_id", out.GroupID))
	env.Out.PrintDict(out.ToDict())
	return nil
}

func runGroupList(ctx context.Context, env Env, _ *Args) error {
	groups, err := env.Client.Groups().List(ctx)
	if err != nil {
		return notFound(err, "Groups", "")
	}
	env.Out.PrintList(dicts(groups),
		[]string{"name", "group_id"},
		[]string{"Name", "Group id"},
		0)
	return nil
}

func runGroupDelete(ctx context.Context, env Env, args *Args) error {
	groupID, err := requireString(args, "group-id")
	if err != nil {
		return err
	}
	opts := DeleteGroupOptions{
		Recursive: args.Bool("recursive").OrElse(false),
	}

	logging.Debug("deleting group",
		zap.String("group_id", groupID),
		zap.Bool("recursive", opts.Recursive))
	if err := env.Client.Groups().Delete(ctx, groupID, opts); err != nil {
		return notFound(err, "Group", groupID)
	}
	logging.Info("group deleted",
		zap.String("group_id", groupID),
		zap.Bool("recursive", opts.Recursive))
	return nil
}
