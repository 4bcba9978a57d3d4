// Package dragdrop implements the drag-and-drop core: resolving which tracks
// a gesture moves, translating a pointer position over a virtualized filtered
// view into an insertion point in the full playlist, and reconciling that
// target with the splice coordinates the remote reorder contract expects.
//
// Everything here is a pure function of its inputs. [ComputeDropIntent] is
// recomputed on every pointer move during an active drag, so it allocates
// nothing beyond a small sort buffer.
//
// Validation failures are reported as descriptive strings, never errors or
// panics; an empty string means the drop is allowed.
package dragdrop
