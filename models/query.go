package models

import (
	"gorm.io/gorm"
)

const (
	QueryPending    = "pending"
	QueryInProgress = "in-progress"
	QueryResolved   = "resolved"
	QueryRejected   = "rejected"

	SenderClinic = "clinic"
	SenderUser   = "user"
)

// Query is a complaint or question raised by a clinic or an end user.
type Query struct {
	gorm.Model
	SenderType       string       `json:"senderType" gorm:"index;not null"`
	ClinicalCenterID *uint        `json:"clinicalCenterId,omitempty" gorm:"index"`
	SenderName       string       `json:"senderName" gorm:"not null"`
	SenderEmail      string       `json:"senderEmail"`
	SenderPhone      string       `json:"senderPhone"`
	Subject          string       `json:"subject" gorm:"not null"`
	Message          string       `json:"message" gorm:"type:text;not null"`
	Status           string       `json:"status" gorm:"index;not null;default:pending"`
	Notes            string       `json:"notes" gorm:"type:text"`
	Replies          []QueryReply `json:"replies,omitempty"`
}

type QueryReply struct {
	gorm.Model
	QueryID    uint   `json:"queryId" gorm:"index;not null"`
	Author     string `json:"author" gorm:"not null"`
	AuthorName string `json:"authorName"`
	Message    string `json:"message" gorm:"type:text;not null"`
}
