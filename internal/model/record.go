// Package model defines the inspection record types shared by the loader,
// matcher, presentation and rendering layers.
package model

import (
	"time"
)

// NotAvailable is the sentinel stored for derived values that could not be computed.
const NotAvailable = "not available"

// Field identifies one canonical record attribute.
type Field string

// Canonical record fields.
const (
	FieldIdentifier            Field = "identifier"
	FieldName                  Field = "name"
	FieldModelCode             Field = "model_code"
	FieldMaterial              Field = "material"
	FieldHeatNumber            Field = "heat_number"
	FieldCertificateNumber     Field = "certificate_number"
	FieldDrawingNumber         Field = "drawing_number"
	FieldInspector             Field = "inspector"
	FieldControlNumber         Field = "control_number"
	FieldInspectionDate        Field = "inspection_date"
	FieldPickupDate            Field = "pickup_date"
	FieldCertificateReturnDate Field = "certificate_return_date"
)

// SourceFields lists the fields read from a source table, in export order.
// FieldModelCode is derived and therefore not listed.
var SourceFields = []Field{
	FieldIdentifier,
	FieldName,
	FieldMaterial,
	FieldHeatNumber,
	FieldCertificateNumber,
	FieldDrawingNumber,
	FieldInspector,
	FieldControlNumber,
	FieldInspectionDate,
	FieldPickupDate,
	FieldCertificateReturnDate,
}

// IsDate reports whether the field holds a date value.
func (f Field) IsDate() bool {
	switch f {
	case FieldInspectionDate, FieldPickupDate, FieldCertificateReturnDate:
		return true
	default:
		return false
	}
}

// DateValue is a date column value. Valid is false when Raw could not be
// parsed; Raw is kept so the value can still be shown.
type DateValue struct {
	Raw   string    `json:"raw,omitempty" yaml:"raw,omitempty"`
	Time  time.Time `json:"time,omitempty" yaml:"time,omitempty"`
	Valid bool      `json:"valid" yaml:"valid"`
}

// IsZero reports whether the source cell was empty.
func (d DateValue) IsZero() bool {
	return !d.Valid && d.Raw == ""
}

// Record is one inspection entry for a shaft part.
type Record struct {
	Identifier        string `json:"identifier" yaml:"identifier"`
	Name              string `json:"name,omitempty" yaml:"name,omitempty"`
	ModelCode         string `json:"model_code" yaml:"model_code"`
	Material          string `json:"material,omitempty" yaml:"material,omitempty"`
	HeatNumber        string `json:"heat_number,omitempty" yaml:"heat_number,omitempty"`
	CertificateNumber string `json:"certificate_number,omitempty" yaml:"certificate_number,omitempty"`
	DrawingNumber     string `json:"drawing_number,omitempty" yaml:"drawing_number,omitempty"`
	Inspector         string `json:"inspector,omitempty" yaml:"inspector,omitempty"`
	ControlNumber     string `json:"control_number,omitempty" yaml:"control_number,omitempty"`

	InspectionDate        DateValue `json:"inspection_date" yaml:"inspection_date"`
	PickupDate            DateValue `json:"pickup_date" yaml:"pickup_date"`
	CertificateReturnDate DateValue `json:"certificate_return_date" yaml:"certificate_return_date"`
}

// Get returns the string value of a non-date field. Unknown fields and date
// fields return "".
func (r Record) Get(f Field) string {
	switch f {
	case FieldIdentifier:
		return r.Identifier
	case FieldName:
		return r.Name
	case FieldModelCode:
		return r.ModelCode
	case FieldMaterial:
		return r.Material
	case FieldHeatNumber:
		return r.HeatNumber
	case FieldCertificateNumber:
		return r.CertificateNumber
	case FieldDrawingNumber:
		return r.DrawingNumber
	case FieldInspector:
		return r.Inspector
	case FieldControlNumber:
		return r.ControlNumber
	default:
		return ""
	}
}

// Date returns the value of a date field. Non-date fields return the zero DateValue.
func (r Record) Date(f Field) DateValue {
	switch f {
	case FieldInspectionDate:
		return r.InspectionDate
	case FieldPickupDate:
		return r.PickupDate
	case FieldCertificateReturnDate:
		return r.CertificateReturnDate
	default:
		return DateValue{}
	}
}

// Set assigns a string value to a non-date field. It reports false for
// unknown or date fields.
func (r *Record) Set(f Field, v string) bool {
	switch f {
	case FieldIdentifier:
		r.Identifier = v
	case FieldName:
		r.Name = v
	case FieldModelCode:
		r.ModelCode = v
	case FieldMaterial:
		r.Material = v
	case FieldHeatNumber:
		r.HeatNumber = v
	case FieldCertificateNumber:
		r.CertificateNumber = v
	case FieldDrawingNumber:
		r.DrawingNumber = v
	case FieldInspector:
		r.Inspector = v
	case FieldControlNumber:
		r.ControlNumber = v
	default:
		return false
	}
	return true
}

// SetDate assigns a date field. It reports false for non-date fields.
func (r *Record) SetDate(f Field, d DateValue) bool {
	switch f {
	case FieldInspectionDate:
		r.InspectionDate = d
	case FieldPickupDate:
		r.PickupDate = d
	case FieldCertificateReturnDate:
		r.CertificateReturnDate = d
	default:
		return false
	}
	return true
}
