// Package testutil provides test doubles shared by the export packages.
//
// Key components:
//   - RecordingSink: an in-memory export.Sink that keeps every write and
//     the labels rendered on Finalize
//   - NewMemFS: an afero in-memory filesystem seeded with files
//
// All test data should be defined inline, not in external files.
package testutil
