package hashmap

import (
	"context"
	"fmt"
	"sort"
)

// call records one remote invocation on fakeClient
type call struct {
	Method string
	ID     string
	Fields Payload
	Filter MappingFilter
	Opts   DeleteGroupOptions
}

// fakeClient is an in-memory Client that records every call. err, when set,
// is returned by every method. emptyUpdate makes Update answer without a
// mapping, like a service replying 204.
type fakeClient struct {
	calls       []call
	err         error
	emptyUpdate bool
	nextID      int
	services    map[string]Service
	fields      map[string]Field
	groups      map[string]Group
	mappings    map[string]Mapping
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		services: map[string]Service{},
		fields:   map[string]Field{},
		groups:   map[string]Group{},
		mappings: map[string]Mapping{},
	}
}

func (c *fakeClient) id(prefix string) string {
	c.nextID++
	return fmt.Sprintf("%s%d", prefix, c.nextID)
}

func (c *fakeClient) record(cl call) error {
	c.calls = append(c.calls, cl)
	return c.err
}

func (c *fakeClient) methods() []string {
	out := make([]string, 0, len(c.calls))
	for _, cl := range c.calls {
		out = append(out, cl.Method)
	}
	return out
}

func (c *fakeClient) Services() ServiceAPI { return fakeServices{c} }
func (c *fakeClient) Fields() FieldAPI     { return fakeFields{c} }
func (c *fakeClient) Mappings() MappingAPI { return fakeMappings{c} }
func (c *fakeClient) Groups() GroupAPI     { return fakeGroups{c} }

type fakeServices struct{ c *fakeClient }

func (f fakeServices) Create(_ context.Context, fields Payload) (*Service, error) {
	if err := f.c.record(call{Method: "services.create", Fields: fields}); err != nil {
		return nil, err
	}
	s := Service{ServiceID: f.c.id("S"), Name: fields["name"]}
	f.c.services[s.ServiceID] = s
	return &s, nil
}

func (f fakeServices) List(_ context.Context) ([]Service, error) {
	if err := f.c.record(call{Method: "services.list"}); err != nil {
		return nil, err
	}
	out := make([]Service, 0, len(f.c.services))
	for _, s := range f.c.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceID < out[j].ServiceID })
	return out, nil
}

func (f fakeServices) Delete(_ context.Context, id string) error {
	if err := f.c.record(call{Method: "services.delete", ID: id}); err != nil {
		return err
	}
	if _, ok := f.c.services[id]; !ok {
		return fmt.Errorf("service %s: %w", id, ErrNotFound)
	}
	delete(f.c.services, id)
	return nil
}

type fakeFields struct{ c *fakeClient }

func (f fakeFields) Create(_ context.Context, fields Payload) (*Field, error) {
	if err := f.c.record(call{Method: "fields.create", Fields: fields}); err != nil {
		return nil, err
	}
	if _, ok := f.c.services[fields["service_id"]]; !ok {
		return nil, ErrNotFound
	}
	fl := Field{FieldID: f.c.id("F"), Name: fields["name"], ServiceID: fields["service_id"]}
	f.c.fields[fl.FieldID] = fl
	return &fl, nil
}

func (f fakeFields) List(_ context.Context, serviceID string) ([]Field, error) {
	if err := f.c.record(call{Method: "fields.list", ID: serviceID}); err != nil {
		return nil, err
	}
	if _, ok := f.c.services[serviceID]; !ok {
		return nil, ErrNotFound
	}
	var out []Field
	for _, fl := range f.c.fields {
		if fl.ServiceID == serviceID {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f fakeFields) Delete(_ context.Context, id string) error {
	if err := f.c.record(call{Method: "fields.delete", ID: id}); err != nil {
		return err
	}
	if _, ok := f.c.fields[id]; !ok {
		return ErrNotFound
	}
	delete(f.c.fields, id)
	return nil
}

type fakeMappings struct{ c *fakeClient }

func (f fakeMappings) Create(_ context.Context, fields Payload) (*Mapping, error) {
	if err := f.c.record(call{Method: "mappings.create", Fields: fields}); err != nil {
		return nil, err
	}
	cost, err := parseCost(fields["cost"])
	if err != nil {
		return nil, err
	}
	m := Mapping{
		MappingID: f.c.id("M"),
		Value:     fields["value"],
		Cost:      cost,
		Type:      MappingType(fields["type"]),
		FieldID:   fields["field_id"],
		ServiceID: fields["service_id"],
		GroupID:   fields["group_id"],
	}
	if m.Type == "" {
		m.Type = MappingFlat
	}
	f.c.mappings[m.MappingID] = m
	return &m, nil
}

func (f fakeMappings) List(_ context.Context, filter MappingFilter) ([]Mapping, error) {
	if err := f.c.record(call{Method: "mappings.list", Filter: filter}); err != nil {
		return nil, err
	}
	var out []Mapping
	for _, m := range f.c.mappings {
		if filter.ServiceID != "" && m.ServiceID != filter.ServiceID {
			continue
		}
		if filter.FieldID != "" && m.FieldID != filter.FieldID {
			continue
		}
		if filter.GroupID != "" && m.GroupID != filter.GroupID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f fakeMappings) Get(_ context.Context, id string) (*Mapping, error) {
	if err := f.c.record(call{Method: "mappings.get", ID: id}); err != nil {
		return nil, err
	}
	m, ok := f.c.mappings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (f fakeMappings) Update(_ context.Context, id string, fields Payload) (*Mapping, error) {
	if err := f.c.record(call{Method: "mappings.update", ID: id, Fields: fields}); err != nil {
		return nil, err
	}
	m, ok := f.c.mappings[id]
	if !ok {
		return nil, ErrNotFound
	}
	edit := EditMapping(m)
	for attr, v := range fields {
		if err := edit.Set(attr, v); err != nil {
			return nil, err
		}
	}
	m = edit.Mapping()
	f.c.mappings[id] = m
	if f.c.emptyUpdate {
		return nil, nil
	}
	return &m, nil
}

func (f fakeMappings) Delete(_ context.Context, id string) error {
	if err := f.c.record(call{Method: "mappings.delete", ID: id}); err != nil {
		return err
	}
	if _, ok := f.c.mappings[id]; !ok {
		return ErrNotFound
	}
	delete(f.c.mappings, id)
	return nil
}

type fakeGroups struct{ c *fakeClient }

func (f fakeGroups) Create(_ context.Context, fields Payload) (*Group, error) {
	if err := f.c.record(call{Method: "groups.create", Fields: fields}); err != nil {
		return nil, err
	}
	g := Group{GroupID: f.c.id("G"), Name: fields["name"]}
	f.c.groups[g.GroupID] = g
	return &g, nil
}

func (f fakeGroups) List(_ context.Context) ([]Group, error) {
	if err := f.c.record(call{Method: "groups.list"}); err != nil {
		return nil, err
	}
	var out []Group
	for _, g := range f.c.groups {
		out = append(out, g)
	}
	return out, nil
}

func (f fakeGroups) Delete(_ context.Context, id string, opts DeleteGroupOptions) error {
	if err := f.c.record(call{Method: "groups.delete", ID: id, Opts: opts}); err != nil {
		return err
	}
	if _, ok := f.c.groups[id]; !ok {
		return ErrNotFound
	}
	delete(f.c.groups, id)
	return nil
}

// recorder is a Presenter that keeps what it was asked to print
type recorder struct {
	dicts  []map[string]string
	rows   []map[string]string
	fields []string
	labels []string
	sortBy int
	lists  int
}

func (r *recorder) PrintDict(d map[string]string) {
	r.dicts = append(r.dicts, d)
}

func (r *recorder) PrintList(rows []map[string]string, fields, labels []string, sortBy int) {
	r.lists++
	r.rows = rows
	r.fields = fields
	r.labels = labels
	r.sortBy = sortBy
}

func run(t interface{ Helper() }, c *fakeClient, name string, args *Args) (*recorder, error) {
	t.Helper()
	cmd, ok := Lookup(name)
	if !ok {
		panic("unknown command " + name)
	}
	out := &recorder{}
	err := cmd.Run(context.Background(), Env{Client: c, Out: out}, args)
	return out, err
}
