package dto

import (
	"mime/multipart"

	"medibook/internal/domains/doctor/model"
	"medibook/shared"
	gDto "medibook/shared/dto"
	gModel "medibook/shared/model"
	"medibook/shared/timezone"

	"github.com/google/uuid"
)

type CreateDoctorRequest struct {
	Name      string                `json:"name"      validate:"required,max=100"`
	Specialty string                `json:"specialty" validate:"omitempty,max=100"`
	Bio       string                `json:"bio"       validate:"omitempty"`
	Phone     string                `json:"phone"     validate:"omitempty,max=20"`
	Email     string                `json:"email"     validate:"omitempty,email,max=100"`
	Photo     *multipart.FileHeader `json:"photo"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile multipart.File        `json:"-"`
	Published *bool                 `json:"published" validate:"omitempty"`
}

func (c *CreateDoctorRequest) ToModel(user string, photoURL string) model.Doctor {
	published := true
	if c.Published != nil {
		published = *c.Published
	}

	return model.Doctor{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Specialty: c.Specialty,
		Bio:       c.Bio,
		Phone:     c.Phone,
		Email:     c.Email,
		Photo:     photoURL,
		Published: published,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateDoctorRequest struct {
	Name      string                `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Specialty string                `db:"specialty" json:"specialty" validate:"omitempty,max=100"`
	Bio       string                `db:"bio"       json:"bio"       validate:"omitempty"`
	Phone     string                `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	Email     string                `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	Photo     *multipart.FileHeader `json:"photo"   validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile multipart.File        `json:"-"`
	Published *bool                 `db:"published" json:"published" validate:"omitempty"`
}

type DoctorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Photo     string `json:"photo"`
	Published bool   `json:"published"`
	gDto.Metadata
}

func (r *DoctorResponse) FromModel(model model.Doctor) {
	r.ID = model.ID
	r.Name = model.Name
	r.Specialty = model.Specialty
	r.Bio = model.Bio
	r.Phone = model.Phone
	r.Email = model.Email
	r.Photo = model.Photo
	r.Published = model.Published
	r.Metadata.FromModel(model.Metadata)
}

type GetDoctorsResponse struct {
	Doctors   []DoctorResponse `json:"doctors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetDoctorsResponse) FromModels(models []model.Doctor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Doctors = make([]DoctorResponse, len(models))
	for i, mod := range models {
		r.Doctors[i].FromModel(mod)
	}
}
