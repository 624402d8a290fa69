package models

import "time"

// WorkSchedule is a weekly unit schedule entry (lịch công tác).
type WorkSchedule struct {
	ScheduleID   int        `gorm:"primaryKey;column:schedule_id" json:"schedule_id"`
	Title        string     `gorm:"column:title" json:"title"`
	Content      *string    `gorm:"column:content" json:"content,omitempty"`
	Location     *string    `gorm:"column:location" json:"location,omitempty"`
	StartTime    time.Time  `gorm:"column:start_time" json:"start_time"`
	EndTime      *time.Time `gorm:"column:end_time" json:"end_time,omitempty"`
	DepartmentID *int       `gorm:"column:department_id" json:"department_id,omitempty"`
	CreatedBy    int        `gorm:"column:created_by" json:"created_by"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Creator    *User       `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}
