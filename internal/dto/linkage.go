package dto

// RemoveLinkResponse reports the outcome of deactivating a day link. The
// orphaned count is how many instances under the link already carry recorded
// work; those instances are preserved.
type RemoveLinkResponse struct {
	Message       string `json:"message"`
	OrphanedCount int64  `json:"orphaned_count"`
}
