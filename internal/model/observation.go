package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Delay is one recorded interruption during an observation
type Delay struct {
	Reason   string  `json:"reason"`
	Minutes  float64 `json:"minutes"`
	Comments string  `json:"comments,omitempty"`
}

// DelayList is stored as a JSONB column
type DelayList []Delay

func (l DelayList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *DelayList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into DelayList", src)
	}
}

// Observation records one measurement of actual performance against a
// standard.
type Observation struct {
	Base
	UserID                  uuid.UUID  `json:"user_id" db:"user_id"`
	StandardID              uuid.UUID  `json:"standard_id" db:"standard_id"`
	TimeObserved            float64    `json:"time_observed" db:"time_observed"`
	TotalSams               float64    `json:"total_sams" db:"total_sams"`
	ObservedPerformance     float64    `json:"observed_performance" db:"observed_performance"`
	PumpScore               float64    `json:"pump_score" db:"pump_score"`
	Pace                    float64    `json:"pace" db:"pace"`
	Utilization             float64    `json:"utilization" db:"utilization"`
	Methods                 float64    `json:"methods" db:"methods"`
	Comments                *string    `json:"comments,omitempty" db:"comments"`
	BestPracticesChecked    StringList `json:"best_practices_checked" db:"best_practices_checked"`
	ProcessAdherenceChecked StringList `json:"process_adherence_checked" db:"process_adherence_checked"`
	Delays                  DelayList  `json:"delays" db:"delays"`
	ObservationReason       string     `json:"observation_reason" db:"observation_reason"`
	StartTime               time.Time  `json:"start_time" db:"start_time"`
	EndTime                 time.Time  `json:"end_time" db:"end_time"`
	IsFinalized             bool       `json:"is_finalized" db:"is_finalized"`

	Data []*ObservationData `json:"data,omitempty" db:"-"`
}

// ObservationData is the per-UOM quantity breakdown of an observation
type ObservationData struct {
	Base
	ObservationID uuid.UUID `json:"observation_id" db:"observation_id"`
	UomEntryID    uuid.UUID `json:"uom_entry_id" db:"uom_entry_id"`
	Uom           string    `json:"uom" db:"uom"`
	Quantity      float64   `json:"quantity" db:"quantity"`
	SamValue      float64   `json:"sam_value" db:"sam_value"`
}

// ObservationFilter represents observation list parameters
type ObservationFilter struct {
	UserID        uuid.UUID `json:"user_id" form:"user_id"`
	StandardID    uuid.UUID `json:"standard_id" form:"standard_id"`
	FinalizedOnly bool      `json:"finalized_only" form:"finalized_only"`
	StartDate     time.Time `json:"start_date" form:"start_date"`
	EndDate       time.Time `json:"end_date" form:"end_date"`
}
