package model

// Fragment is one .sshconf source file discovered in the fragment directory.
// Content is read once at discovery and never re-read during a merge pass.
type Fragment struct {
	// Name is the bare file name (e.g. "10-home.sshconf"). Fragments are
	// merged in ascending byte order of Name, which fixes the section
	// ordering of the generated config file.
	Name    string
	Path    string
	Content string
}

// Sections holds the four marker-delimited blocks extracted from a fragment.
// A section is either present (trimmed, non-empty) or the empty string;
// absence and emptiness are indistinguishable.
type Sections struct {
	Conditions string
	Global     string
	Local      string
	Remote     string
}

// ConditionKey identifies one kind of rule line inside a CONDITIONS block.
type ConditionKey string

const (
	KeySSID    ConditionKey = "LocalSSID"
	KeyGateway ConditionKey = "LocalGateway"
	KeyPing    ConditionKey = "LocalPing"
)

// Condition is one parsed `Key Value` line from a CONDITIONS block. Values
// is the comma-split value list; its element grammar depends on Key. Lines
// with unknown keys are still parsed; the evaluator ignores them.
type Condition struct {
	Key    ConditionKey
	Values []string
}

// GatewaySpec is one `ip|mac` element of a LocalGateway value list.
type GatewaySpec struct {
	IP  string
	MAC string
}

// FragmentResult records how one fragment contributed to a merge pass.
// It feeds diagnostics and the event journal, not the merge itself.
type FragmentResult struct {
	Name     string `json:"name"`
	UseLocal bool   `json:"use_local"`
	Reason   string `json:"reason,omitempty"`
	Skipped  bool   `json:"skipped,omitempty"`
}
