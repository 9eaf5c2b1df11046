// Package design defines the UAV design record data model and the
// data-access layer that loads records from a corpus directory. Records
// are validated and normalized here so downstream consumers can assume
// well-typed input.
package design

// Unknown is the literal category used for optional fields that are
// absent from a design record.
const Unknown = "Unknown"

// ComponentSpec describes one physical part within a design.
type ComponentSpec struct {
	Instance string `json:"component_instance"`
	Type     string `json:"component_type"`
	Choice   string `json:"component_choice"`
}

// Connection describes a directed point-to-point link between two
// component instances. FromPort and ToPort are free-text connector-port
// labels (e.g. "Side_Connector_2").
type Connection struct {
	FromInstance string `json:"from_ci"`
	ToInstance   string `json:"to_ci"`
	FromPort     string `json:"from_conn"`
	ToPort       string `json:"to_conn"`
}

// Record is one design's raw payload: a component list plus an ordered
// connection list. Records are immutable once loaded.
type Record struct {
	Name        string       `json:"name"`
	Components  []ComponentSpec `json:"components"`
	Connections []Connection `json:"connections"`
}

// Validate checks required fields and fills defaults for optional ones.
// Component instances, and connection endpoints, are required; type,
// choice, and port labels default to Unknown. The designID is used only
// for error context.
func (r *Record) Validate(designID string) error {
	for i := range r.Components {
		c := &r.Components[i]
		if c.Instance == "" {
			return &MalformedDesignError{
				Design: designID,
				Field:  "component_instance",
				Err:    ErrMissingField,
			}
		}
		if c.Type == "" {
			c.Type = Unknown
		}
		if c.Choice == "" {
			c.Choice = Unknown
		}
	}
	for i := range r.Connections {
		conn := &r.Connections[i]
		if conn.FromInstance == "" {
			return &MalformedDesignError{
				Design: designID,
				Field:  "from_ci",
				Err:    ErrMissingField,
			}
		}
		if conn.ToInstance == "" {
			return &MalformedDesignError{
				Design: designID,
				Field:  "to_ci",
				Err:    ErrMissingField,
			}
		}
		if conn.FromPort == "" {
			conn.FromPort = Unknown
		}
		if conn.ToPort == "" {
			conn.ToPort = Unknown
		}
	}
	return nil
}
