package dtos

type ReviewCreationRequest struct {
	SubjectID string `json:"subject_id" binding:"required,uuid"`
	JobID     string `json:"job_id" binding:"omitempty,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}
