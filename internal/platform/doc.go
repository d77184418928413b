package platform

// Package platform contains OS integration glue: preparing the download directory
// and locating the external downloader on the search path.
