package structs

// Employee is the EMS backend's wire shape. The backend owns identity and
// timestamps; the gateway never fills them on its own.
type Employee struct {
	Id          int64   `json:"id,omitempty"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	CountryCode string  `json:"countryCode,omitempty"`
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	Salary      float64 `json:"salary"`
	HireDate    string  `json:"hireDate,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// SearchCriteria is rebuilt per search; zero-valued fields are not sent.
type SearchCriteria struct {
	Department string
	Position   string
	MinSalary  float64
	MaxSalary  float64
	SearchTerm string
}

func (c SearchCriteria) IsEmpty() bool {
	return c == SearchCriteria{}
}

// PagedResult mirrors the backend's page envelope. Number is the zero-based
// page index echoed back from the request.
type PagedResult struct {
	Content       []Employee `json:"content"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int64      `json:"totalPages"`
	Size          int64      `json:"size"`
	Number        int64      `json:"number"`
}
