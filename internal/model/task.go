package model

import (
	"time"
)

// PrayerTime is one of the five fixed daily prayer periods a task is
// assigned to.
type PrayerTime string

const (
	PrayerFajr    PrayerTime = "Fajr"
	PrayerDhuhr   PrayerTime = "Dhuhr"
	PrayerAsr     PrayerTime = "Asr"
	PrayerMaghrib PrayerTime = "Maghrib"
	PrayerIsha    PrayerTime = "Isha"
)

func (p PrayerTime) Valid() bool {
	switch p {
	case PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha:
		return true
	}
	return false
}

// TaskCategory is an Eisenhower-style importance/urgency combination.
type TaskCategory string

const (
	CategoryImportantUrgent       TaskCategory = "important_urgent"
	CategoryImportantNotUrgent    TaskCategory = "important_not_urgent"
	CategoryNotImportantUrgent    TaskCategory = "not_important_urgent"
	CategoryNotImportantNotUrgent TaskCategory = "not_important_not_urgent"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryImportantUrgent, CategoryImportantNotUrgent,
		CategoryNotImportantUrgent, CategoryNotImportantNotUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          string       `db:"id" json:"id"`
	UserID      string       `db:"user_id" json:"user"`
	Title       string       `db:"title" json:"title"`
	Date        time.Time    `db:"date" json:"date"`
	PrayerTime  PrayerTime   `db:"prayer_time" json:"prayerTime"`
	Category    TaskCategory `db:"category" json:"category"`
	IsCompleted bool         `db:"is_completed" json:"isCompleted"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}
