package export

import (
	"fmt"
	"io"

	"github.com/xitongsys/parquet-go/source"

	"github.com/shophub/shopctl/internal/export/cloudwriter"
)

// cloudParquetFile adapts a CloudWriter to the parquet writer's file
// interface. Cloud objects are write-once: Read and seek-from-end are
// unsupported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
