// Package atlas holds the editing model for a sprite sheet: sprite
// regions, the sprite tree that organizes them, and the session that ties
// both to a loaded sheet.
//
// # Regions
//
// A Region is a rectangle on the sheet with a stable id and a provenance
// tag (grid cell, detection result, or manual edit). Region ids are
// session-scoped, monotonically increasing, and never reused: a removed
// region's id stays dead, so callers can hold ids across mutations without
// aliasing surprises.
//
// # Resolution
//
// New rectangles enter the model through Resolve, which checks candidates
// against the sheet canvas and the regions already present:
//
//   - rectangles outside the canvas (or with no area) are rejected
//   - exact duplicates collapse to the first-seen instance, which makes
//     re-running a grid or detection pass over the same sheet a no-op
//   - overlapping-but-not-identical rectangles are all kept and flagged,
//     never silently merged; deciding what an overlap means is the
//     caller's business
//
// # The Sprite Tree
//
// The tree is an arena of nodes indexed by stable integer ids: groups
// organize, leaves each carry one region. An implicit root group (id 0)
// always exists and can never be removed or reparented. All mutations
// validate first and only then commit, so a failed operation leaves the
// tree exactly as it was; removing a group cascades through its subtree
// and reports which regions died with it.
//
// Any view layer renders from ids and Snapshot values; nothing in the tree
// references presentation state.
//
// # Sessions
//
// A Session binds one loaded sheet (by path and canvas size) to its tree
// and region counter, serializing mutations behind a mutex. The Registry
// maps sheet paths to sessions so a server can route tool calls. Sessions
// live in memory only; exports are files, sessions are not.
package atlas
