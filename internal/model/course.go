package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ScheduleEntry is a single class slot. Entries have no identity of
// their own; the list is owned inline by the course.
type ScheduleEntry struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// ScheduleList stores the schedule as a JSON text column.
type ScheduleList []ScheduleEntry

func (s ScheduleList) Value() (driver.Value, error) {
	if s == nil {
		s = ScheduleList{}
	}
	return json.Marshal(s)
}

func (s *ScheduleList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = ScheduleList{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	}
	return fmt.Errorf("cannot scan %T into ScheduleList", src)
}

type Course struct {
	ID         string       `db:"id" json:"id"`
	UserID     string       `db:"user_id" json:"user"`
	CourseName string       `db:"course_name" json:"courseName"`
	Schedule   ScheduleList `db:"schedule" json:"schedule"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updatedAt"`
}
