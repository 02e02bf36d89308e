package models

import (
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
)

// Appointment model
type Appointment struct {
	ID           int64             `gorm:"primaryKey;column:id" json:"id"`
	PatientID    int64             `gorm:"not null;index;column:patient_id" json:"patient_id"`
	DoctorID     int64             `gorm:"not null;index;column:doctor_id" json:"doctor_id"`
	Date         time.Time         `gorm:"not null;index;column:date" json:"date"`
	Status       AppointmentStatus `gorm:"size:20;not null;default:'Scheduled';column:status;check:status IN ('Scheduled', 'Completed')" json:"status"`
	Diagnosis    *string           `gorm:"type:text;column:diagnosis" json:"diagnosis,omitempty"`
	Prescription *string           `gorm:"type:text;column:prescription" json:"prescription,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	Patient      *User             `gorm:"foreignKey:PatientID;references:ID" json:"patient,omitempty"`
	Doctor       *User             `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ContactMessage model
type ContactMessage struct {
	ID       int64     `gorm:"primaryKey;column:id" json:"id"`
	Name     string    `gorm:"size:100;not null;column:name" json:"name"`
	Email    string    `gorm:"size:120;not null;column:email" json:"email"`
	Subject  string    `gorm:"size:100;not null;column:subject" json:"subject"`
	Message  string    `gorm:"type:text;not null;column:message" json:"message"`
	DateSent time.Time `gorm:"not null;index;column:date_sent" json:"date_sent"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

// DoctorAvailability is one weekly time slot of a doctor.
// DayOfWeek counts from Monday (0) to Sunday (6).
type DoctorAvailability struct {
	ID          int64  `gorm:"primaryKey;column:id" json:"id"`
	DoctorID    int64  `gorm:"not null;index;uniqueIndex:idx_doctor_slot;column:doctor_id" json:"doctor_id"`
	DayOfWeek   int    `gorm:"not null;uniqueIndex:idx_doctor_slot;column:day_of_week;check:day_of_week BETWEEN 0 AND 6" json:"day_of_week"`
	StartTime   string `gorm:"size:5;not null;uniqueIndex:idx_doctor_slot;column:start_time" json:"start_time"`
	EndTime     string `gorm:"size:5;not null;uniqueIndex:idx_doctor_slot;column:end_time" json:"end_time"`
	IsAvailable bool   `gorm:"not null;column:is_available" json:"is_available"`
}

func (DoctorAvailability) TableName() string {
	return "doctor_availability"
}

// TimeRange is a start/end pair in HH:MM form
type TimeRange struct {
	Start string
	End   string
}

// DefaultTimeRanges are the hourly slots seeded for every weekday. 13:00-14:00 is lunch.
var DefaultTimeRanges = []TimeRange{
	{"09:00", "10:00"}, {"10:00", "11:00"}, {"11:00", "12:00"},
	{"12:00", "13:00"}, {"14:00", "15:00"}, {"15:00", "16:00"},
	{"16:00", "17:00"},
}

// DefaultWorkingDays is the number of seeded days, Monday to Friday.
const DefaultWorkingDays = 5

// DefaultWeeklySlots builds the initial availability of a doctor, all marked available.
func DefaultWeeklySlots(doctorID int64) []DoctorAvailability {
	slots := make([]DoctorAvailability, 0, DefaultWorkingDays*len(DefaultTimeRanges))
	for day := 0; day < DefaultWorkingDays; day++ {
		for _, tr := range DefaultTimeRanges {
			slots = append(slots, DoctorAvailability{
				DoctorID:    doctorID,
				DayOfWeek:   day,
				StartTime:   tr.Start,
				EndTime:     tr.End,
				IsAvailable: true,
			})
		}
	}
	return slots
}

// GroupByDay indexes slots by day of week, keeping their relative order.
func GroupByDay(slots []DoctorAvailability) map[int][]DoctorAvailability {
	byDay := make(map[int][]DoctorAvailability)
	for _, slot := range slots {
		byDay[slot.DayOfWeek] = append(byDay[slot.DayOfWeek], slot)
	}
	return byDay
}

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayName returns the English name of a Monday-based day index.
func WeekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[day]
}
