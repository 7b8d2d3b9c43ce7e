// Package driven defines the interfaces the core depends on: source and
// destination connectors, the object-store seam backends implement, the
// partitioner collaborator, and run-history persistence. Adapters implement
// these; the core never imports an adapter.
package driven
