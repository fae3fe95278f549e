package db

import (
	"errors"
	"fmt"

	"go-ipconf/internal/models"
	"go-ipconf/internal/parser"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

func byPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position asc")
}

// SaveReport stores a summarized result together with the text it came from.
func SaveReport(source, input string, res *parser.Result) (*models.Report, error) {
	rep := models.Report{
		UUID:    uuid.NewString(),
		Source:  source,
		Input:   input,
		Devices: make([]models.ReportDevice, 0, len(res.Devices)),
	}
	for i, d := range res.Devices {
		rd := models.ReportDevice{Position: i, Name: d.Name}
		for j, iface := range d.Interfaces {
			rd.Interfaces = append(rd.Interfaces, models.ReportInterface{
				Position: j,
				Name:     iface.Name,
				IPv4:     iface.IPv4,
				IPv6:     iface.IPv6,
			})
		}
		rep.Devices = append(rep.Devices, rd)
	}

	if err := DB.Create(&rep).Error; err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	return &rep, nil
}

func GetReport(id string) (*models.Report, error) {
	var rep models.Report
	err := DB.Preload("Devices", byPosition).
		Preload("Devices.Interfaces", byPosition).
		Where("uuid = ?", id).
		First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load report %s: %w", id, err)
	}
	return &rep, nil
}

// ListReports returns the newest reports first, without their input text.
func ListReports(limit int) ([]models.Report, error) {
	var reps []models.Report
	err := DB.Omit("input").
		Preload("Devices", byPosition).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&reps).Error
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reps, nil
}

// ReportResult rebuilds the ordered result from a stored report.
func ReportResult(rep *models.Report) *parser.Result {
	res := parser.NewResult()
	for _, rd := range rep.Devices {
		d := res.Ensure(rd.Name)
		for _, ri := range rd.Interfaces {
			iface := d.Ensure(ri.Name)
			iface.IPv4, iface.IPv6 = ri.IPv4, ri.IPv6
		}
	}
	return res
}
