// Package meta holds the declarative export metadata attached to Go types
// and struct fields, and the registry that resolves it.
//
// Type-level metadata (an Element) is declared by implementing Exportable,
// or registered on a Registry for types the caller does not own. A type
// with no Element is never exported. Field-level metadata is declared with
// struct tags:
//
//	Status  int      `export:",prefix=order.status.,label=order.status"`
//	Secret  string   `export:"-"`
//	Address *Address `exportprops:"city,position=0,label=addr.city;zip,position=1"`
//	Owner   *User    `export:"name" exportset:"label=order.owner"`
//
// The export tag carries a single descriptor whose first token is the name
// of a sub-property to export from a composite value (empty for scalars).
// The exportprops tag carries an ordered list of descriptors and wins over
// export when both are present. exportset carries the label and position
// of the list as a whole. Option values cannot contain commas or semicolons.
package meta
