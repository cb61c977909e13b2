package dto

import "app/internal/model"

// CourseCreateDTO is the instructor's new-course payload.
type CourseCreateDTO struct {
	Name              string  `json:"name" validate:"required"`
	PictureURL        string  `json:"pictureURL"`
	SubCategory       string  `json:"subCategory"`
	Price             float64 `json:"price" validate:"gte=0"`
	AvailableQuantity int     `json:"availableQuantity" validate:"gte=0"`
	InstructorName    string  `json:"instructorName"`
}

// CourseUpdateFields are the instructor-editable attributes.
type CourseUpdateFields struct {
	Name              string  `json:"name" validate:"required"`
	PictureURL        string  `json:"pictureURL"`
	SubCategory       string  `json:"subCategory"`
	Price             float64 `json:"price" validate:"gte=0"`
	AvailableQuantity int     `json:"availableQuantity" validate:"gte=0"`
}

// CourseUpdateDTO wraps the update payload the way clients send it.
type CourseUpdateDTO struct {
	ClassData CourseUpdateFields `json:"classData" validate:"required"`
}

// CourseStatusDTO is the admin approval payload.
type CourseStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=pending accept deny"`
}

// BrowseRequestDTO identifies the (possibly anonymous) browsing account.
type BrowseRequestDTO struct {
	Mail string `json:"mail"`
}

// BrowseResponseDTO lists approved courses plus whether the account may
// add them to a cart; userCheck is null for unknown accounts.
type BrowseResponseDTO struct {
	Result    []model.Course `json:"result"`
	UserCheck *bool          `json:"userCheck"`
}

// ImageUploadRequestDTO asks for a presigned course image upload.
type ImageUploadRequestDTO struct {
	Filename string `json:"filename" validate:"required"`
}

// ImageUploadResponseDTO carries the presigned PUT URL and the object key
// to store as the course pictureURL.
type ImageUploadResponseDTO struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}
