package model

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Color       string `gorm:"size:7;default:'#00695c'" json:"color"`
	Icon        string `gorm:"size:50" json:"icon"`
	Active      bool   `gorm:"default:true" json:"active"`
}

func (Category) TableName() string {
	return "categories"
}
