package model

// Salon is the tenant. Every business row carries its ID and every
// query is scoped by it.
type Salon struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Address string `gorm:"type:varchar(255)" json:"address"`
	LogoURL string `gorm:"type:varchar(500)" json:"logoUrl"`

	// Agenda settings
	OpenTime          string `gorm:"type:varchar(5);default:'08:00'" json:"openTime"`
	CloseTime         string `gorm:"type:varchar(5);default:'18:00'" json:"closeTime"`
	WorkingDays       string `gorm:"type:varchar(20);default:'1,2,3,4,5'" json:"workingDays"` // weekday numbers, comma separated
	BlockOutsideHours bool   `gorm:"default:false" json:"blockOutsideHours"`
}
