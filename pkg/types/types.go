package types

import (
	"encoding/json"
	"fmt"
	"time"
)

type Role string

const (
	RoleOperator Role = "operator"
	RoleCustomer Role = "customer"
	// RolePending is the role of a signed-in identity whose profile lookup
	// has not completed yet. All mutating actions are denied while pending.
	RolePending Role = "pending"
)

func RoleFromString(s string) Role {
	if s == string(RoleOperator) {
		return RoleOperator
	}
	return RoleCustomer
}

type Session struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userID,omitempty"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role,omitempty"`
	Designation   string `json:"designation,omitempty"`

	// JustVerified is set for exactly one render after a sign-in that was
	// triggered by an email confirmation link. The session is forced back
	// out; the login view shows a one-time success message instead.
	JustVerified bool `json:"justVerified,omitempty"`

	// ConfigWarning carries a non-fatal configuration problem (for example
	// a missing profiles table) that should be shown in a persistent banner.
	ConfigWarning string `json:"configWarning,omitempty"`
}

type Profile struct {
	ID          string `json:"id" validate:"required"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
}

const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

type Alert struct {
	ID        string    `json:"id" validate:"required"`
	AssetType string    `json:"type" validate:"required"`
	Severity  string    `json:"severity" validate:"oneof=Critical High Medium Low"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	TicketStatusToDo       = "To Do"
	TicketStatusInProgress = "In Progress"
	TicketStatusDone       = "Done"
)

type Ticket struct {
	ID         string    `json:"id" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	AssetID    string    `json:"assetId"`
	AssignedTo string    `json:"assignedTo"`
	Created    time.Time `json:"created"`
	Status     string    `json:"status" validate:"oneof='To Do' 'In Progress' 'Done'"`
}

const (
	SwitchStateConnected    = "Connected"
	SwitchStateDisconnected = "Disconnected"
)

type Disconnector struct {
	ID          string    `json:"id" validate:"required"`
	AssetID     string    `json:"assetId"`
	Status      string    `json:"status" validate:"oneof=Connected Disconnected"`
	LastChanged time.Time `json:"lastChanged"`
	Operator    string    `json:"operator"`
}

const (
	FeatureStatusHealthy  = "Healthy"
	FeatureStatusWarning  = "Warning"
	FeatureStatusCritical = "Critical"
)

const (
	FeatureTypeSubstation = "Substation"
	FeatureTypeHTLine     = "HT Line"
	FeatureTypeLTLine     = "LT Line"
)

// Geometry is the GeoJSON geometry of a network feature. Point carries
// [lon, lat]; LineString carries a sequence of [lon, lat] pairs.
type Geometry struct {
	Type       string      `validate:"oneof=Point LineString"`
	Point      []float64   `json:"-"`
	LineString [][]float64 `json:"-"`
}

func (g *Geometry) UnmarshalJSON(b []byte) error {
	raw := struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	}{}

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	g.Type = raw.Type
	g.Point = nil
	g.LineString = nil

	switch raw.Type {
	case "Point":
		return json.Unmarshal(raw.Coordinates, &g.Point)
	case "LineString":
		return json.Unmarshal(raw.Coordinates, &g.LineString)
	}

	return fmt.Errorf("unsupported geometry type %q", raw.Type)
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	var coordinates any = g.Point
	if g.Type == "LineString" {
		coordinates = g.LineString
	}

	return json.Marshal(struct {
		Type        string `json:"type"`
		Coordinates any    `json:"coordinates"`
	}{Type: g.Type, Coordinates: coordinates})
}

// MapFeature is one row of the network_geo table, which stores GeoJSON
// features with the identifying attributes nested under properties.
type MapFeature struct {
	ID       string   `validate:"required"`
	Type     string   `validate:"oneof=Substation 'HT Line' 'LT Line'"`
	Status   string   `validate:"oneof=Healthy Warning Critical"`
	Geometry Geometry `validate:"required"`
}

type featureProperties struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

func (f *MapFeature) UnmarshalJSON(b []byte) error {
	raw := struct {
		Properties featureProperties `json:"properties"`
		Geometry   Geometry          `json:"geometry"`
	}{}

	err := json.Unmarshal(b, &raw)
	if err != nil {
		return err
	}

	f.ID = raw.Properties.ID
	f.Type = raw.Properties.Type
	f.Status = raw.Properties.Status
	f.Geometry = raw.Geometry

	return nil
}

func (f MapFeature) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string            `json:"type"`
		Properties featureProperties `json:"properties"`
		Geometry   Geometry          `json:"geometry"`
	}{
		Type:       "Feature",
		Properties: featureProperties{ID: f.ID, Type: f.Type, Status: f.Status},
		Geometry:   f.Geometry,
	})
}

type ZoneHealth struct {
	Name   string  `json:"name" yaml:"name"`
	Health float64 `json:"health" yaml:"health"`
}

type KPI struct {
	TotalAssets  int     `json:"totalAssets" yaml:"totalAssets"`
	ActiveFaults int     `json:"activeFaults" yaml:"activeFaults"`
	Transformers int     `json:"transformers" yaml:"transformers"`
	GridHealth   float64 `json:"gridHealth" yaml:"gridHealth"`
}

type RiskAsset struct {
	ID          string  `json:"id" yaml:"id"`
	Risk        string  `json:"risk" yaml:"risk"`
	Probability float64 `json:"probability" yaml:"probability"`
}
