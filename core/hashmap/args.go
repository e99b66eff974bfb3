package hashmap

import "sort"

// Payload is the sparse key/value body sent to the rating service.
// Keys are API attribute names (service_id, cost, ...).
type Payload map[string]string

// Keys returns the attribute names in ascending order
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Args holds the flags supplied on one command invocation, keyed by flag
// name. Flags the user did not pass are simply absent.
type Args struct {
	strs  map[string]string
	bools map[string]bool
}

// NewArgs returns an empty argument record
func NewArgs() *Args {
	return &Args{
		strs:  make(map[string]string),
		bools: make(map[string]bool),
	}
}

// SetString records a supplied string flag
func (a *Args) SetString(name, value string) *Args {
	a.strs[name] = value
	return a
}

// SetBool records a supplied boolean flag
func (a *Args) SetBool(name string, value bool) *Args {
	a.bools[name] = value
	return a
}

// String returns the string flag, if supplied
func (a *Args) String(name string) Optional[string] {
	if v, ok := a.strs[name]; ok {
		return Some(v)
	}
	return None[string]()
}

// Bool returns the boolean flag, if supplied
func (a *Args) Bool(name string) Optional[bool] {
	if v, ok := a.bools[name]; ok {
		return Some(v)
	}
	return None[bool]()
}

// MapFields builds a payload from the supplied flags. table maps a flag
// name to its payload attribute; flags that were not supplied never produce
// a key. Values are forwarded untouched.
func MapFields(args *Args, table map[string]string) Payload {
	fields := make(Payload, len(table))
	for flag, attr := range table {
		if v, ok := args.String(flag).Get(); ok {
			fields[attr] = v
		}
	}
	return fields
}
