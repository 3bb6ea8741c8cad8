package models

// SyncResult is the structured outcome of a foreground sync run.
// A best-effort run never errors hard; everything that went wrong
// on the way is collected in Errors.
type SyncResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	ProjectsSynced int      `json:"projects_synced"`
	VideosSynced   int      `json:"videos_synced"`
	Errors         []string `json:"errors"`
}
