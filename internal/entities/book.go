package entities

// Book is the only catalog entity. ISBN is the primary key, so SQLite
// rejects a second row with the same value.
type Book struct {
	ISBN             string `gorm:"primaryKey;column:isbn;size:32" json:"isbn" validate:"isbn13"`
	Title            string `gorm:"size:512;not null" json:"title" validate:"notblank"`
	Author           string `gorm:"size:256;not null" json:"author" validate:"notblank"`
	ShortDescription string `gorm:"type:text;not null" json:"short_description" validate:"notblank"`
	PageCount        int    `gorm:"not null" json:"page_count" validate:"gt=0"`
}

func (Book) TableName() string {
	return "books"
}
