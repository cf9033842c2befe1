package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Report is the payload submitted by the desktop diagnostics client.
type Report struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,contains=@"`
	Phone   Phone  `json:"phone"   validate:"required,numeric_value"`
	Message string `json:"message"`

	Memory  *Memory  `json:"memory"  validate:"required"`
	Storage *Storage `json:"storage" validate:"required"`
	System  *System  `json:"system"  validate:"required"`
	Battery *Battery `json:"battery" validate:"required"`
}

// Recipient returns the address the user copy is sent to.
func (r *Report) Recipient() string {
	return strings.TrimSpace(r.Email)
}

type Memory struct {
	MaxGB     float64             `json:"memMax"`
	Slots     int                 `json:"memSlots"`
	CurrentGB float64             `json:"memCurrent"`
	Layout    []MemoryModule      `json:"memLayout"`
	Upgrades  []RecommendedModule `json:"optLayout"`
}

// MemoryModule describes one installed DIMM.
type MemoryModule struct {
	SizeGB       float64 `json:"size"`
	Bank         string  `json:"bank"`
	Manufacturer string  `json:"manufacturer"`
	PartNumber   string  `json:"partNum"`
	Type         string  `json:"type"`
}

// RecommendedModule describes one DIMM of the suggested upgrade.
type RecommendedModule struct {
	SizeGB float64 `json:"size"`
	Type   string  `json:"type"`
}

type Storage struct {
	TotalGB     float64     `json:"total"`
	UsedGB      float64     `json:"used"`
	AvailableGB float64     `json:"available"`
	Disks       []Disk      `json:"diskLayout"`
	Upgrade     DiskUpgrade `json:"optDiskLayout"`
}

type Disk struct {
	SizeGB        float64 `json:"size"`
	InterfaceType string  `json:"interfaceType"`
	Type          string  `json:"type"`
	Name          string  `json:"name"`
}

// DiskUpgrade is the suggested extra capacity and resulting total.
type DiskUpgrade struct {
	ExtraGB float64 `json:"extra"`
	TotalGB float64 `json:"total"`
}

type System struct {
	CPU                     string  `json:"cpu"`
	CPUGeneration           int     `json:"cpuGen"`
	Distribution            string  `json:"winDist"`
	Status                  float64 `json:"status"`
	RecommendedDistribution string  `json:"optWinDist"`
	Manufacturer            string  `json:"manufacturer"`
	Model                   string  `json:"model"`
}

type Battery struct {
	DesignedCapacity float64 `json:"designedCapacity"`
	MaxCapacity      float64 `json:"maxCapacity"`
	CurrentCapacity  float64 `json:"currentCapacity"`
	CapacityUnit     string  `json:"capacityUnit"`
	Model            string  `json:"model"`
	HasBattery       bool    `json:"hasBattery"`
}

// Phone holds the submitter's phone number as text. The client may send it
// either as a JSON string or as a JSON number.
type Phone string

func (p *Phone) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*p = Phone(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*p = Phone(n.String())

	return nil
}

func (p Phone) String() string {
	return string(p)
}

// isNumeric reports whether s parses as a decimal number once surrounding
// whitespace is removed.
func isNumeric(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	v, err := strconv.ParseFloat(s, 64)

	return err == nil && !math.IsNaN(v)
}
