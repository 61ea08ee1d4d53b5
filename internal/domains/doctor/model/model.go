package model

import "medibook/shared/model"

const (
	TableName  = "doctors"
	EntityName = "doctor"

	FieldID        = "id"
	FieldName      = "name"
	FieldSpecialty = "specialty"
	FieldBio       = "bio"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldPhoto     = "photo"
	FieldPublished = "published"
)

type Doctor struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Specialty string `db:"specialty"`
	Bio       string `db:"bio"`
	Phone     string `db:"phone"`
	Email     string `db:"email"`
	Photo     string `db:"photo"`
	Published bool   `db:"published"`
	model.Metadata
}
