package download

// Package download runs the external downloader (youtube-dl or a compatible
// fork) as the process of a job. It owns the fixed command line, feeds the URL
// list on standard input, forwards the tool output to the logger and reports
// termination without blocking.
