package types

// ComponentMetadata identifies a component in logs and telemetry.
type ComponentMetadata struct {
	ID   string // Unique identifier for the component instance.
	Type string // Component class, e.g. "PIPELINE" or "SENSOR".
	Name string // Human-readable name.
}

// Option configures a component of type T at construction.
type Option[T any] func(T)
