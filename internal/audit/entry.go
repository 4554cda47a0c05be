package audit

// AccessEntry is one access decision in the audit log.
type AccessEntry struct {
	Timestamp string `json:"ts"`
	SessionID string `json:"session_id"`
	Operation string `json:"op"`
	Path      string `json:"path,omitempty"`
	Decision  string `json:"decision"`
	ErrorKind string `json:"error_kind,omitempty"`
	Reason    string `json:"reason,omitempty"`
	PrevHash  string `json:"prev_hash"`
}

// Decisions recorded per operation.
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)
