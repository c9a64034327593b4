package constants

// JobStatus is the canonical status for rows in the run ledger.
type JobStatus string

// Stable values (store these exact strings in the ledger).
const (
	JobStatusRunning  JobStatus = "RUNNING"   // in progress
	JobStatusCacheHit JobStatus = "CACHE_HIT" // record loaded from a prior run
	JobStatusOCROK    JobStatus = "OCR_OK"    // stage 1 completed (text extracted)
	JobStatusCached   JobStatus = "CACHED"    // stage 2 completed and artifact written
	JobStatusNoFields JobStatus = "NO_FIELDS" // extraction produced an empty record
	JobStatusFailed   JobStatus = "FAILED"    // terminal failure, document skipped
)
