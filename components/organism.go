package components

// Organism bundles identity and lineage for an agent entity.
// The behavioral state lives in systems.Agent; this component is what the
// world driver and telemetry key on.
type Organism struct {
	ID        uint32 `inspect:"label"`
	ParentID  uint32 `inspect:"label"` // 0 for founders
	BirthTick uint64 `inspect:"label"`
}
