package fleet

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Vehicle is a fleet vehicle. The geometry columns of the position tables are
// written and read exclusively through raw PostGIS SQL in Store, so the models
// only carry the plain lat/lon mirrors.
type Vehicle struct {
	ID           int64             `gorm:"primaryKey" json:"id"`
	VIN          string            `gorm:"column:vin;uniqueIndex" json:"vin"`
	LicensePlate string            `gorm:"uniqueIndex" json:"license_plate"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	Year         int               `json:"year"`
	Color        string            `json:"color"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// VehiclePosition is the single current position per vehicle, overwritten in
// place on every update cycle.
type VehiclePosition struct {
	VehicleID  int64     `gorm:"primaryKey" json:"vehicle_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	HeadingDeg float64   `json:"heading_deg"`
	SpeedKph   float64   `json:"speed_kph"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (VehiclePosition) TableName() string {
	return "vehicle_positions"
}

// VehiclePositionHistory is the append-only movement log. Rows are never
// updated; they disappear only via the vehicle cascade delete.
type VehiclePositionHistory struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	VehicleID  int64     `gorm:"index" json:"vehicle_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	HeadingDeg float64   `json:"heading_deg"`
	SpeedKph   float64   `json:"speed_kph"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (VehiclePositionHistory) TableName() string {
	return "vehicle_position_history"
}

// Geofence is a named polygonal region. Vehicles relate to geofences only via
// spatial containment of their current position.
type Geofence struct {
	ID        int64             `gorm:"primaryKey" json:"id"`
	Name      string            `json:"name"`
	FenceType string            `json:"fence_type"`
	Tags      pq.StringArray    `gorm:"type:text[]" json:"tags"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (Geofence) TableName() string {
	return "geofences"
}
