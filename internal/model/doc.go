// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of the magnet records the
// assembly engine consumes and produces.
//
// # Core Concepts
//
//   - Insert: The immutable geometry of an insert magnet, loaded from a YAML
//     record tagged `!<Insert>`. It lists helices, rings, current leads and
//     cooling channels, and derives the counts and numeric arrays used by
//     every later stage.
//
//   - MagnetData: The per-part material records that accompany a geometry
//     (one material per helix, ring and lead, plus an insulator per helix).
//
//   - PartRegistry: The ordered thermal and electric part names of a run. It
//     is frozen once built; later stages read it and check against it.
//
//   - BoundaryGroups: The named boundary collections (mechanical, magnetic
//     and electric Dirichlet, thermal and electric Neumann).
//
//   - FSInfo: Metadata linking a loaded record back to its source file, used
//     in error messages and to derive output names.
//
// Naming follows the solver's grammar verbatim: indices are 1-based in part
// and boundary names and 0-based in Go slices.
package model
