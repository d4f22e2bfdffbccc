package graph

import "errors"

var (
	// ErrNodeNotFound is returned by any query or mutation that references
	// a node identifier not present in the graph. The wrapping error names
	// the missing identifier.
	ErrNodeNotFound = errors.New("node not found")

	// ErrLengthMismatch is returned by batched insertion when a latent mask
	// or weight slice does not match the length of the node/edge slice.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrCycle is returned by [PDAG.AddEdge] when adding a directed edge
	// would close a directed cycle. DAG edge insertion performs no such
	// check - acyclicity of a DAG is the caller's responsibility.
	ErrCycle = errors.New("edge creates a directed cycle")

	// ErrAlreadyOriented is returned by [PDAG.OrientUndirectedEdge] when
	// the pair is already a directed edge in either orientation. Orientation
	// is one-directional: there is no de-orientation operation.
	ErrAlreadyOriented = errors.New("edge is already directed")

	// ErrNoSeparator is returned by [DAG.MinimalDSeparator] when no
	// separating set can exist because the two nodes are adjacent.
	ErrNoSeparator = errors.New("no possible separator")

	// ErrNoConsistentExtension is returned by [PDAG.ToDAG] when the PDAG
	// admits no acyclic completion that preserves its v-structures.
	ErrNoConsistentExtension = errors.New("pdag has no consistent dag extension")
)
