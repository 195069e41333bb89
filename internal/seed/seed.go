package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const OrdersFile = "orders.json"

// Record is one order of the bootstrap file. It keeps the backend's legacy
// destinationCountry and shippingStatus names.
type Record struct {
	ID                 string  `json:"id"`
	ProductName        string  `json:"productName"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	DestinationCountry string  `json:"destinationCountry"`
	ShippingStatus     string  `json:"shippingStatus"`
	TimeShipped        *string `json:"timeShipped"`
	DateShipped        *string `json:"dateShipped"`
	ExpectedArrival    *string `json:"expectedArrival"`
	Reason             *string `json:"reason"`
	Image              *string `json:"image"`
	CreatedAt          string  `json:"createdAt"`
}

func str(s string) *string { return &s }

// SampleOrders are written to a fresh data directory.
func SampleOrders() []Record {
	return []Record{
		{
			ID:                 "BX9K-F03Z-MQ18",
			ProductName:        "Premium Electronics Package",
			Price:              299.99,
			Quantity:           1,
			DestinationCountry: "United States",
			ShippingStatus:     "shipped",
			TimeShipped:        str("14:30"),
			DateShipped:        str("2024-01-15"),
			ExpectedArrival:    str("2024-01-20"),
			CreatedAt:          "2024-01-15T14:30:00.000Z",
		},
		{
			ID:                 "CY8L-G14A-NR29",
			ProductName:        "Fashion Accessories Set",
			Price:              149.5,
			Quantity:           2,
			DestinationCountry: "Canada",
			ShippingStatus:     "delivered",
			TimeShipped:        str("09:15"),
			DateShipped:        str("2024-01-10"),
			ExpectedArrival:    str("2024-01-14"),
			CreatedAt:          "2024-01-10T09:15:00.000Z",
		},
		{
			ID:                 "DZ7M-H25B-OS30",
			ProductName:        "Home Appliance Bundle",
			Price:              599.99,
			Quantity:           1,
			DestinationCountry: "United Kingdom",
			ShippingStatus:     "pending",
			Reason:             str("Awaiting customs clearance documentation"),
			CreatedAt:          "2024-01-16T10:00:00.000Z",
		},
	}
}

// Seeder prepares the local directories and sample data the backend reads.
type Seeder struct {
	Fs         afero.Fs
	DataDir    string
	UploadsDir string
	Logger     zerolog.Logger
}

func NewSeeder(fs afero.Fs, dataDir, uploadsDir string, logger zerolog.Logger) *Seeder {
	return &Seeder{
		Fs:         fs,
		DataDir:    dataDir,
		UploadsDir: uploadsDir,
		Logger:     logger,
	}
}

// Report lists what a run created. Empty fields mean nothing was needed.
type Report struct {
	Directories []string
	OrdersFile  string
}

// Run creates missing directories and writes the orders file only when it
// does not exist yet. Existing data is never touched.
func (s *Seeder) Run() (Report, error) {
	var report Report

	for _, dir := range []string{s.UploadsDir, s.DataDir} {
		exists, err := afero.DirExists(s.Fs, dir)
		if err != nil {
			return report, fmt.Errorf("stat %s: %w", dir, err)
		}
		if exists {
			continue
		}
		if err := s.Fs.MkdirAll(dir, 0o755); err != nil {
			return report, fmt.Errorf("create %s: %w", dir, err)
		}
		s.Logger.Info().Str("dir", dir).Msg("Created directory")
		report.Directories = append(report.Directories, dir)
	}

	path := filepath.Join(s.DataDir, OrdersFile)
	exists, err := afero.Exists(s.Fs, path)
	if err != nil {
		return report, fmt.Errorf("stat %s: %w", path, err)
	}
	if exists {
		s.Logger.Debug().Str("file", path).Msg("Orders file already present")
		return report, nil
	}

	data, err := json.MarshalIndent(SampleOrders(), "", "  ")
	if err != nil {
		return report, fmt.Errorf("encode sample orders: %w", err)
	}
	// O_EXCL: an existing file is never overwritten.
	f, err := s.Fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return report, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return report, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return report, fmt.Errorf("close %s: %w", path, err)
	}
	s.Logger.Info().Str("file", path).Int("orders", len(SampleOrders())).Msg("Created orders file with sample data")
	report.OrdersFile = path
	return report, nil
}
