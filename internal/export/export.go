// Package export writes order reports as CSV, JSON lines or parquet, to a
// local file or to S3.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/shophub/shopctl/internal/export/cloudwriter"
	"github.com/shophub/shopctl/internal/models"
)

const (
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

type Exporter struct {
	format             string
	path               string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	showProgress       bool
}

type Option func(*Exporter)

// WithCloudDestination routes the report to object storage instead of the
// local filesystem; path becomes the object key.
func WithCloudDestination(factory cloudwriter.CloudWriterFactory, bucket string) Option {
	return func(e *Exporter) {
		e.cloudWriterFactory = factory
		e.cloudBucketName = bucket
	}
}

func WithProgress() Option {
	return func(e *Exporter) { e.showProgress = true }
}

func New(format, path string, opts ...Option) (*Exporter, error) {
	switch format {
	case FormatCSV, FormatJSON, FormatParquet:
	default:
		return nil, fmt.Errorf("export: unsupported format: %s", format)
	}
	e := &Exporter{format: format, path: path}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export writes the given orders and returns the number written.
func (e *Exporter) Export(orders []models.Order) (int, error) {
	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = progressbar.Default(int64(len(orders)), "exporting orders")
	}

	tick := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	switch e.format {
	case FormatParquet:
		return e.exportParquet(orders, tick)
	default:
		return e.exportText(orders, tick)
	}
}

func (e *Exporter) exportText(orders []models.Order, tick func()) (int, error) {
	out, err := e.newByteTarget()
	if err != nil {
		return 0, err
	}

	written := 0
	switch e.format {
	case FormatCSV:
		cw := csv.NewWriter(out)
		if err := cw.Write(csvHeader); err != nil {
			out.Close()
			return 0, err
		}
		for _, order := range orders {
			if err := cw.Write(csvRow(order)); err != nil {
				out.Close()
				return written, err
			}
			written++
			tick()
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			out.Close()
			return written, err
		}
	case FormatJSON:
		enc := json.NewEncoder(out)
		for _, order := range orders {
			if err := enc.Encode(order); err != nil {
				out.Close()
				return written, err
			}
			written++
			tick()
		}
	}

	if err := out.Close(); err != nil {
		return written, err
	}
	return written, nil
}

var csvHeader = []string{
	"order_id", "user_id", "status", "payment_status", "payment_method",
	"tracking_id", "item_count", "item_names", "subtotal", "shipping_cost",
	"tax", "total", "city", "country", "created_at",
}

func csvRow(order models.Order) []string {
	names := make([]string, 0, len(order.Items))
	itemCount := 0
	for _, item := range order.Items {
		names = append(names, item.Name)
		itemCount += item.Quantity
	}
	return []string{
		order.OrderID,
		order.UserID,
		string(order.Status),
		string(order.PaymentStatus),
		order.PaymentMethod,
		order.TrackingID,
		strconv.Itoa(itemCount),
		strings.Join(names, "; "),
		order.Subtotal.String(),
		order.ShippingCost.String(),
		order.Tax.String(),
		order.Total.String(),
		order.ShippingAddress.City,
		order.ShippingAddress.Country,
		order.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// orderRow is the flat parquet schema for one order.
type orderRow struct {
	OrderID       string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	UserID        string  `parquet:"name=user_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Status        string  `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8"`
	PaymentStatus string  `parquet:"name=payment_status, type=BYTE_ARRAY, convertedtype=UTF8"`
	PaymentMethod string  `parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8"`
	TrackingID    string  `parquet:"name=tracking_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemCount     int32   `parquet:"name=item_count, type=INT32"`
	Total         float64 `parquet:"name=total, type=DOUBLE"`
	City          string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8"`
	Country       string  `parquet:"name=country, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreatedAt     int64   `parquet:"name=created_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

func (e *Exporter) exportParquet(orders []models.Order, tick func()) (int, error) {
	fw, err := e.newParquetTarget()
	if err != nil {
		return 0, err
	}

	pw, err := writer.NewParquetWriter(fw, new(orderRow), 4)
	if err != nil {
		fw.Close()
		return 0, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	written := 0
	for _, order := range orders {
		itemCount := 0
		for _, item := range order.Items {
			itemCount += item.Quantity
		}
		total, _ := order.Total.Float64()
		row := orderRow{
			OrderID:       order.OrderID,
			UserID:        order.UserID,
			Status:        string(order.Status),
			PaymentStatus: string(order.PaymentStatus),
			PaymentMethod: order.PaymentMethod,
			TrackingID:    order.TrackingID,
			ItemCount:     int32(itemCount),
			Total:         total,
			City:          order.ShippingAddress.City,
			Country:       order.ShippingAddress.Country,
			CreatedAt:     order.CreatedAt.UnixMilli(),
		}
		if err := pw.Write(row); err != nil {
			return written, fmt.Errorf("failed to write row: %w", err)
		}
		written++
		tick()
	}

	if err := pw.WriteStop(); err != nil {
		return written, fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return written, err
	}
	return written, nil
}

func (e *Exporter) newByteTarget() (io.WriteCloser, error) {
	if e.cloudWriterFactory != nil {
		cw, err := e.cloudWriterFactory.NewWriter(e.cloudBucketName, e.path)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer: %w", err)
		}
		return cloudWriteCloser{cw}, nil
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	return os.Create(e.path)
}

func (e *Exporter) newParquetTarget() (source.ParquetFile, error) {
	if e.cloudWriterFactory != nil {
		cw, err := e.cloudWriterFactory.NewWriter(e.cloudBucketName, e.path)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer: %w", err)
		}
		return newCloudParquetFile(cw), nil
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}
	return local.NewLocalFileWriter(e.path)
}

type cloudWriteCloser struct {
	cloudwriter.CloudWriter
}

func (c cloudWriteCloser) Write(p []byte) (int, error) {
	return c.CloudWriter.Write(p)
}
