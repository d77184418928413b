package model

// Package model defines the small domain vocabulary shared by the supervisor, the
// CLI and the UI: the busy state of a supervisor and the summary of its last job.
