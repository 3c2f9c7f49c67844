// Package testutil provides utilities for testing basrs components.
//
// Key components:
//   - TestEnvironment: temp HOME and XDG directories, reloaded into adrg/xdg
//     so config and log lookups never touch the developer's real files
//   - RequireShell/RequireBash: skip tests whose interpreter is missing
//   - CreateFile/ReadFile: fail-fast file helpers
//
// Usage guidelines:
//   - Tests that run bash pass an explicit session environment
//     (TestEnvironment.SessionEnv) so results do not depend on the caller
//   - All test data should be defined inline, not in external files
package testutil
