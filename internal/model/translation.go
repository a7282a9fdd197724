package model

// Translation maps a string key to its localized text for one language.
// swagger:model Translation
type Translation struct {
	BaseModel
	Key  string `gorm:"size:100;not null;uniqueIndex:idx_key_lang" json:"key"`
	Lang string `gorm:"size:10;not null;uniqueIndex:idx_key_lang" json:"lang"`
	Text string `gorm:"type:text;not null" json:"text"`
}

func (Translation) TableName() string {
	return "translations"
}
