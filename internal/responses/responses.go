package responses

import "staffdesk/internal/structs"

var (
	Success = structs.Response{
		Status:      0,
		Description: "success",
	}
	BadRequest = structs.Response{
		Status:      1,
		Description: "bad request",
	}
	NotFound = structs.Response{
		Status:      2,
		Description: "not found",
	}
	Unauthorized = structs.Response{
		Status:      3,
		Description: "unauthorized",
	}
	ValidationFailed = structs.Response{
		Status:      4,
		Description: "validation failed",
	}
	InternalErr = structs.Response{
		Status:      5,
		Description: "internal error",
	}
)
