package testing

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/onsi/gomega"

	"github.com/hamjambo/hare-report-mailer/pkg/report"
)

const (
	timeout = 10 * time.Second
)

type NewReportOpts func(*report.Report)

// NewReport returns a report that passes validation. Memory is AVERAGE, storage
// HIGH, system LOW and the battery AVERAGE unless options change them.
func NewReport(opts ...NewReportOpts) *report.Report {
	rep := &report.Report{
		Name:    "Juma",
		Email:   "juma@example.com",
		Phone:   "0712345678",
		Message: "Laptop is slow when opening several tabs",
		Memory: &report.Memory{
			MaxGB:     16,
			Slots:     2,
			CurrentGB: 8,
			Layout: []report.MemoryModule{
				{SizeGB: 8, Bank: "BANK 0", Manufacturer: "Samsung", PartNumber: "M471A1K43DB1-CWE", Type: "DDR4"},
			},
			Upgrades: []report.RecommendedModule{
				{SizeGB: 8, Type: "DDR4"},
				{SizeGB: 8, Type: "DDR4"},
			},
		},
		Storage: &report.Storage{
			TotalGB:     512,
			UsedGB:      100,
			AvailableGB: 412,
			Disks: []report.Disk{
				{SizeGB: 512, InterfaceType: "NVMe", Type: "SSD", Name: "KXG60ZNV512G"},
			},
			Upgrade: report.DiskUpgrade{ExtraGB: 512, TotalGB: 1024},
		},
		System: &report.System{
			CPU:                     "Intel(R) Core(TM) i5-8250U",
			CPUGeneration:           8,
			Distribution:            "Windows 10 Pro",
			Status:                  40,
			RecommendedDistribution: "Windows 11 Pro",
			Manufacturer:            "Dell Inc.",
			Model:                   "Latitude 7490",
		},
		Battery: &report.Battery{
			DesignedCapacity: 60000,
			MaxCapacity:      36000,
			CurrentCapacity:  30000,
			CapacityUnit:     "mWh",
			Model:            "DELL GJKNX",
			HasBattery:       true,
		},
	}

	for _, opt := range opts {
		opt(rep)
	}

	return rep
}

func WithName(name string) NewReportOpts {
	return func(rep *report.Report) {
		rep.Name = name
	}
}

func WithEmail(email string) NewReportOpts {
	return func(rep *report.Report) {
		rep.Email = email
	}
}

func WithPhone(phone string) NewReportOpts {
	return func(rep *report.Report) {
		rep.Phone = report.Phone(phone)
	}
}

func WithMessage(message string) NewReportOpts {
	return func(rep *report.Report) {
		rep.Message = message
	}
}

func WithMemory(current, max float64) NewReportOpts {
	return func(rep *report.Report) {
		rep.Memory.CurrentGB = current
		rep.Memory.MaxGB = max
	}
}

func WithStorage(available, total float64) NewReportOpts {
	return func(rep *report.Report) {
		rep.Storage.AvailableGB = available
		rep.Storage.TotalGB = total
	}
}

func WithSystemStatus(status float64) NewReportOpts {
	return func(rep *report.Report) {
		rep.System.Status = status
	}
}

func WithBattery(maxCapacity, designedCapacity float64) NewReportOpts {
	return func(rep *report.Report) {
		rep.Battery.MaxCapacity = maxCapacity
		rep.Battery.DesignedCapacity = designedCapacity
		rep.Battery.HasBattery = true
	}
}

func WithoutBattery(rep *report.Report) {
	rep.Battery.HasBattery = false
}

func WithoutMemory(rep *report.Report) {
	rep.Memory = nil
}

func WithoutStorage(rep *report.Report) {
	rep.Storage = nil
}

func WithoutSystem(rep *report.Report) {
	rep.System = nil
}

func WithoutBatterySection(rep *report.Report) {
	rep.Battery = nil
}

// ReportJSON encodes rep the way the diagnostics client posts it.
func ReportJSON(rep *report.Report) []byte {
	data, err := json.Marshal(rep)
	if err != nil {
		panic(err)
	}

	return data
}

func LoadFixtureFromFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

func StartTestServer(path string, testHandler http.Handler, g gomega.Gomega) *httptest.Server {
	testRouter := mux.NewRouter()
	testRouter.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	testRouter.Handle(path, testHandler)

	// Start a local test HTTP server
	srv := httptest.NewServer(testRouter)

	// Wait until test server is ready
	g.Eventually(func() int {
		// Ignoring error is ok as it goes for retry for non-200 cases
		healthResp, err := http.Get(fmt.Sprintf("%s/health", srv.URL))
		if err != nil {
			log.Printf("retrying :%v", err)
			return 0
		}
		defer healthResp.Body.Close()

		return healthResp.StatusCode
	}, timeout).Should(gomega.Equal(http.StatusOK))

	return srv
}

func GenerateRandomAlphaString(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"

	bytes := secureRandomBytes(length)
	for i, b := range bytes {
		bytes[i] = alphabet[b%byte(len(alphabet))]
	}

	return string(bytes)
}

func secureRandomBytes(length int) []byte {
	bytes := make([]byte, length)

	_, err := rand.Read(bytes)
	if err != nil {
		log.Fatal("Unable to generate random bytes")
	}

	return bytes
}
