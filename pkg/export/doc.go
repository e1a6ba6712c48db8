// Package export walks Go object graphs and lays them out as rows and
// columns on a Sink.
//
// Every root object of a list gets its own row. Its properties become
// columns in the order of their declared positions; the "id" property, when
// present, always comes first. Scalar properties are written directly;
// composite ones are expanded after the direct properties of their owner,
// each distinct instance at most once per row. Which types and properties
// take part, and how columns are labeled, is declared with package meta.
//
// An Exporter is used for one run at a time:
//
//	e := export.New(sink, export.WithResolver(catalog))
//	err := e.Run(w, orders)
//
// Run is Init, Export, Finalize and WriteTo in sequence.
package export
