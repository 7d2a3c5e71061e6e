package dtos

type PreferenceCreationRequest struct {
	Name     string   `json:"name" binding:"required"`
	Keywords []string `json:"keywords" binding:"required,min=1"`

	// Optional Fields
	Location        string `json:"location"`
	Remote          bool   `json:"remote"`
	SalaryMin       int    `json:"salary_min"`
	SalaryMax       int    `json:"salary_max"`
	SalaryPeriod    string `json:"salary_period" binding:"omitempty,oneof=year day"`
	ContractType    string `json:"contract_type" binding:"omitempty,oneof=permanent contract internship"`
	ExperienceLevel string `json:"experience_level" binding:"omitempty,oneof=entry mid senior"`
}

// PreferenceUpdateRequest uses pointers so "field absent" and "set to
// zero value" can be told apart.
type PreferenceUpdateRequest struct {
	Name            *string   `json:"name"`
	Keywords        *[]string `json:"keywords"`
	Location        *string   `json:"location"`
	Remote          *bool     `json:"remote"`
	SalaryMin       *int      `json:"salary_min"`
	SalaryMax       *int      `json:"salary_max"`
	SalaryPeriod    *string   `json:"salary_period" binding:"omitempty,oneof=year day"`
	ContractType    *string   `json:"contract_type" binding:"omitempty,oneof=permanent contract internship"`
	ExperienceLevel *string   `json:"experience_level" binding:"omitempty,oneof=entry mid senior"`
	Active          *bool     `json:"active"`
}
