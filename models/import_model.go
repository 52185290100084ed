package models

import (
	"time"

	"gorm.io/gorm"
)

// ImportFileLog records every bulk file the processor has handled so a
// re-dropped file is skipped.
type ImportFileLog struct {
	gorm.Model
	Filename     string `gorm:"unique;not null"`
	DateModified time.Time
}
