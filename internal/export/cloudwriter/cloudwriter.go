// Package cloudwriter uploads exported order reports to object storage.
package cloudwriter

// CloudWriter buffers report bytes and persists them on Close.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// CloudWriterFactory creates a writer per exported object.
type CloudWriterFactory interface {
	NewWriter(bucket, key string) (CloudWriter, error)
}
