// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package exodus reads and writes Exodus II finite-element mesh files: a
// NetCDF-backed container for coordinates, element/edge/face blocks and
// their connectivity, node/side/element sets, time-dependent field
// variables, ID maps, names, properties, assemblies, and blobs.
//
// A *File is obtained from Create, Open, or Append and carries a
// Read/Write capability pair plus a define/data schema-mode state
// machine mirroring the reference format's own define/enddef/data
// lifecycle: schema (dimensions, blocks, sets, variable declarations)
// is established while the handle is in define mode, and bulk data I/O
// only proceeds once that schema is frozen.
package exodus
