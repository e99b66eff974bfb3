package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudkitty-hashmap/core/hashmap"
	"cloudkitty-hashmap/internal/config"
)

// stubClient serves a fixed data set and records what commands send
type stubClient struct {
	services []hashmap.Service
	mapping  hashmap.Mapping

	updated    hashmap.Payload
	deleteOpts *hashmap.DeleteGroupOptions
	deleteErr  error
}

func (s *stubClient) Services() hashmap.ServiceAPI { return stubServices{s} }
func (s *stubClient) Fields() hashmap.FieldAPI     { return stubFields{s} }
func (s *stubClient) Mappings() hashmap.MappingAPI { return stubMappings{s} }
func (s *stubClient) Groups() hashmap.GroupAPI     { return stubGroups{s} }

type stubServices struct{ s *stubClient }

func (a stubServices) Create(_ context.Context, p hashmap.Payload) (*hashmap.Service, error) {
	return &hashmap.Service{ServiceID: "S1", Name: p["name"]}, nil
}
func (a stubServices) List(context.Context) ([]hashmap.Service, error) { return a.s.services, nil }
func (a stubServices) Delete(context.Context, string) error            { return a.s.deleteErr }

type stubFields struct{ s *stubClient }

func (stubFields) Create(_ context.Context, p hashmap.Payload) (*hashmap.Field, error) {
	return &hashmap.Field{FieldID: "F1", Name: p["name"], ServiceID: p["service_id"]}, nil
}
func (stubFields) List(context.Context, string) ([]hashmap.Field, error) { return nil, nil }
func (stubFields) Delete(context.Context, string) error                  { return nil }

type stubMappings struct{ s *stubClient }

func (stubMappings) Create(context.Context, hashmap.Payload) (*hashmap.Mapping, error) {
	return &hashmap.Mapping{MappingID: "M1"}, nil
}
func (stubMappings) List(context.Context, hashmap.MappingFilter) ([]hashmap.Mapping, error) {
	return nil, nil
}
func (a stubMappings) Get(context.Context, string) (*hashmap.Mapping, error) {
	m := a.s.mapping
	return &m, nil
}
func (a stubMappings) Update(_ context.Context, id string, p hashmap.Payload) (*hashmap.Mapping, error) {
	a.s.updated = p
	m := a.s.mapping
	m.Cost, _ = decimal.NewFromString(p["cost"])
	return &m, nil
}
func (stubMappings) Delete(context.Context, string) error { return nil }

type stubGroups struct{ s *stubClient }

func (stubGroups) Create(_ context.Context, p hashmap.Payload) (*hashmap.Group, error) {
	return &hashmap.Group{GroupID: "G1", Name: p["name"]}, nil
}
func (stubGroups) List(context.Context) ([]hashmap.Group, error) { return nil, nil }
func (a stubGroups) Delete(_ context.Context, _ string, opts hashmap.DeleteGroupOptions) error {
	a.s.deleteOpts = &opts
	return nil
}

// execute runs the CLI against client and returns stdout and stderr
func execute(t *testing.T, client hashmap.Client, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	orig := newClient
	newClient = func(*config.Config) hashmap.Client { return client }
	t.Cleanup(func() { newClient = orig })

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)

	args = append(args, "--config", filepath.Join(t.TempDir(), "none.json"), "--no-color")
	err := run(root, args, &stderr)
	return stdout.String(), stderr.String(), err
}

func subcommand(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("command %s not registered", name)
	return nil
}

func TestCommandTreeMatchesFlagSpecs(t *testing.T) {
	root := NewRootCmd()

	cmds := hashmap.Commands()
	require.Len(t, cmds, 13)

	for _, spec := range cmds {
		c := subcommand(t, root, spec.Name)
		assert.Equal(t, spec.Short, c.Short)
		for _, f := range spec.Flags {
			flag := c.Flags().Lookup(f.Name)
			require.NotNil(t, flag, "%s --%s", spec.Name, f.Name)
			assert.Equal(t, f.Short, flag.Shorthand, "%s --%s", spec.Name, f.Name)

			_, marked := flag.Annotations[cobra.BashCompOneRequiredFlag]
			assert.Equal(t, f.Required, marked, "%s --%s", spec.Name, f.Name)
		}
	}
}

func TestServiceCreatePrintsEntity(t *testing.T) {
	stdout, stderr, err := execute(t, &stubClient{}, "hashmap-service-create", "--name", "compute")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "compute")
	assert.Contains(t, stdout, "S1")
}

func TestServiceListPrintsTable(t *testing.T) {
	client := &stubClient{services: []hashmap.Service{
		{ServiceID: "S2", Name: "volume"},
		{ServiceID: "S1", Name: "compute"},
	}}

	stdout, _, err := execute(t, client, "hashmap-service-list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Service id")
	assert.Less(t, bytes.Index([]byte(stdout), []byte("compute")), bytes.Index([]byte(stdout), []byte("volume")))
}

func TestMissingRequiredFlag(t *testing.T) {
	_, stderr, err := execute(t, &stubClient{}, "hashmap-field-create", "--name", "flavor")
	require.Error(t, err)
	assert.Contains(t, stderr, "ERROR: ")
	assert.Contains(t, stderr, "service-id")
}

func TestMappingUpdateSendsOnlyChangedFields(t *testing.T) {
	client := &stubClient{mapping: hashmap.Mapping{
		MappingID: "M1",
		Value:     "m1.tiny",
		Cost:      decimal.NewFromInt(1),
		Type:      hashmap.MappingFlat,
		FieldID:   "F1",
	}}

	stdout, _, err := execute(t, client, "hashmap-mapping-update", "-m", "M1", "-c", "5", "-v", "m1.tiny")
	require.NoError(t, err)
	assert.Equal(t, hashmap.Payload{"cost": "5"}, client.updated)
	assert.Contains(t, stdout, "m1.tiny")
}

func TestGroupDeleteRecursiveSwitch(t *testing.T) {
	client := &stubClient{}
	_, _, err := execute(t, client, "hashmap-group-delete", "--group-id", "G1")
	require.NoError(t, err)
	require.NotNil(t, client.deleteOpts)
	assert.False(t, client.deleteOpts.Recursive)

	client = &stubClient{}
	_, _, err = execute(t, client, "hashmap-group-delete", "--group-id", "G1", "-r")
	require.NoError(t, err)
	assert.True(t, client.deleteOpts.Recursive)
}

func TestNotFoundIsReported(t *testing.T) {
	client := &stubClient{deleteErr: hashmap.ErrNotFound}

	_, stderr, err := execute(t, client, "hashmap-service-delete", "--service-id", "S9")
	require.Error(t, err)
	assert.Equal(t, "ERROR: Service not found: S9\n", stderr)
}

func TestEndpointFlagOverridesConfig(t *testing.T) {
	_, _, err := execute(t, &stubClient{}, "hashmap-group-list", "--endpoint", "https://rating.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://rating.example.com", config.Get().Endpoint)
	assert.True(t, config.Get().Output.NoColor)
}
