// Package stock is the Composition Root for the inventory store.
//
// It connects the core inventory logic (pkg/core) with the storage adapters
// (pkg/adapters/fs, pkg/adapters/sqlite) using the Hexagonal Architecture pattern.
//
// An inventory is an ordered mapping from item name to quantity. It is loaded
// once, mutated in memory through Add and Remove, and written back explicitly
// with Save. Recoverable problems (unknown item, invalid input, missing file)
// print a one-line diagnostic and leave the inventory unchanged; malformed
// files and I/O failures are returned as errors.
//
// Features:
//
//   - **Ordered**: items keep their insertion order through load, save and report.
//   - **Atomic Saves**: the file is replaced by rename, never left half written.
//   - **Formats**: JSON by default, YAML for .yaml/.yml, SQLite for .db/.sqlite/.sqlite3.
//   - **Reactive**: the filesystem adapter can watch the inventory for external changes.
//
// Usage:
//
//	svc, err := stock.New("inventory.json", stock.WithLogger(logger))
//	inv, err := svc.Load(ctx)
//	_ = svc.Add(inv, "apple", 10, nil)
//	err = svc.Save(ctx, inv)
package stock
