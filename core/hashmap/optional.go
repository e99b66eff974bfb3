package hashmap

// Optional holds a flag value that may not have been supplied. It replaces
// a "not provided" sentinel so that legitimate zero values (an empty string,
// false) stay distinguishable from absence.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was supplied
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value was supplied
func (o Optional[T]) IsSet() bool {
	return o.set
}

// OrElse returns the value, or def when absent
func (o Optional[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}
