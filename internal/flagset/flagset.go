package flagset

import "strings"

// Category groups event kinds so they can be switched on and off per server.
type Category string

const (
	CategoryMessage Category = "message"
	CategoryInvite  Category = "invite"
	CategoryServer  Category = "server"
	CategoryVoice   Category = "voice"
	CategoryAutomod Category = "automod"
	CategoryUser    Category = "user"
)

// Categories returns the default category set in its canonical order.
func Categories() []Category {
	return []Category{
		CategoryMessage,
		CategoryInvite,
		CategoryServer,
		CategoryVoice,
		CategoryAutomod,
		CategoryUser,
	}
}

// IsKnown reports whether c belongs to the default category set.
func IsKnown(c Category) bool {
	for _, k := range Categories() {
		if k == c {
			return true
		}
	}
	return false
}

const (
	pairSep  = ","
	valueSep = ":"
)

// FlagSet is the decoded form of the log_types column.
//
// It keeps insertion order so that Encode(Decode(s)) reproduces the pair order of s.
// The zero value is an empty set ready to use.
type FlagSet struct {
	order  []Category
	values map[Category]bool
}

// AllEnabled returns every default category switched on.
func AllEnabled() FlagSet { return uniform(true) }

// AllDisabled returns every default category switched off. It is the encoding new rows get.
func AllDisabled() FlagSet { return uniform(false) }

func uniform(v bool) FlagSet {
	var f FlagSet
	for _, c := range Categories() {
		f.Set(c, v)
	}
	return f
}

// Set stores v for c. A new category is appended; an existing one keeps its position.
func (f *FlagSet) Set(c Category, v bool) {
	if f.values == nil {
		f.values = make(map[Category]bool)
	}
	if _, ok := f.values[c]; !ok {
		f.order = append(f.order, c)
	}
	f.values[c] = v
}

// Get returns the stored value for c and whether c is present.
func (f FlagSet) Get(c Category) (bool, bool) {
	v, ok := f.values[c]
	return v, ok
}

// Len returns the number of stored categories.
func (f FlagSet) Len() int { return len(f.order) }

// Categories returns the stored categories in insertion order.
func (f FlagSet) Categories() []Category {
	out := make([]Category, len(f.order))
	copy(out, f.order)
	return out
}

// Clone returns an independent copy of f.
func (f FlagSet) Clone() FlagSet {
	var out FlagSet
	for _, c := range f.order {
		out.Set(c, f.values[c])
	}
	return out
}

// Equal reports whether f and o hold the same categories with the same values.
// Order is not compared.
func (f FlagSet) Equal(o FlagSet) bool {
	if f.Len() != o.Len() {
		return false
	}
	for c, v := range f.values {
		ov, ok := o.values[c]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// IsEnabled returns the stored value for c, or true when c is absent.
// Absent categories default on so that categories added later reach existing servers.
func IsEnabled(f FlagSet, c Category) bool {
	v, ok := f.Get(c)
	if !ok {
		return true
	}
	return v
}

// Decode parses "cat:1,cat:0". Malformed pairs are skipped: no ':' separator,
// an empty category, or a value other than 0 or 1. Later duplicates overwrite earlier ones.
func Decode(s string) FlagSet {
	var f FlagSet
	if strings.TrimSpace(s) == "" {
		return f
	}
	for _, pair := range strings.Split(s, pairSep) {
		key, raw, ok := strings.Cut(pair, valueSep)
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		switch strings.TrimSpace(raw) {
		case "1":
			f.Set(Category(key), true)
		case "0":
			f.Set(Category(key), false)
		}
	}
	return f
}

// Encode renders f as "cat:1,cat:0" in insertion order.
func Encode(f FlagSet) string {
	var b strings.Builder
	for i, c := range f.order {
		if i > 0 {
			b.WriteString(pairSep)
		}
		b.WriteString(string(c))
		b.WriteString(valueSep)
		if f.values[c] {
			b.WriteString("1")
		} else {
			b.WriteString("0")
		}
	}
	return b.String()
}
