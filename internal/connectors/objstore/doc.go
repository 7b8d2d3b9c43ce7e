// Package objstore implements the generic source and destination connectors
// shared by every object-store backend (s3, gcs, dropbox, ...). Backends only
// supply a driven.ObjectStore; enumeration, zero-size placeholder filtering,
// local path mapping and destination path mapping all live here so behavior
// is identical across providers.
package objstore
