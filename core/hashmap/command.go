package hashmap

import (
	"context"
	"sort"
)

// FlagKind is the value type of a flag
type FlagKind int

const (
	// FlagString takes a value: --name=compute
	FlagString FlagKind = iota

	// FlagBool is a switch: --recursive
	FlagBool
)

// FlagSpec declares one flag of a command. The CLI layer builds its parser
// from these records at startup.
type FlagSpec struct {
	Name     string
	Short    string
	Help     string
	Required bool
	Kind     FlagKind
	// Default is the textual default shown in help; "false" for switches
	Default string
}

// Presenter renders command results
type Presenter interface {
	// PrintDict prints one entity as a key/value block
	PrintDict(d map[string]string)
	// PrintList prints rows as a table with the given column order and
	// header labels, sorted ascending by column sortBy
	PrintList(rows []map[string]string, fields, labels []string, sortBy int)
}

// Env is what a command runs against
type Env struct {
	Client Client
	Out    Presenter
}

// RunFunc executes a command
type RunFunc func(ctx context.Context, env Env, args *Args) error

// Command is one hashmap-<resource>-<action> entry point
type Command struct {
	Name  string
	Short string
	Flags []FlagSpec
	Run   RunFunc
}

// Commands returns every hashmap command, sorted by name
func Commands() []Command {
	var cmds []Command
	cmds = append(cmds, serviceCommands()...)
	cmds = append(cmds, fieldCommands()...)
	cmds = append(cmds, mappingCommands()...)
	cmds = append(cmds, groupCommands()...)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Lookup returns the command with the given name
func Lookup(name string) (Command, bool) {
	for _, c := range Commands() {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

func required(name, short, help string) FlagSpec {
	return FlagSpec{Name: name, Short: short, Help: help, Required: true, Kind: FlagString}
}

func optional(name, short, help string) FlagSpec {
	return FlagSpec{Name: name, Short: short, Help: help, Kind: FlagString}
}
